// Package audit provides a read-only recomputation of the assignment
// engine's invariants, for a scheduled job to observe drift without ever
// correcting it — corrections belong to the engine's own transactions, not
// to a side process that could race them.
package audit

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
	"github.com/orris-inc/leadrouter/internal/shared/biztime"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// Finding describes a single invariant violation discovered for one
// caller on one business date.
type Finding struct {
	CallerID          uint
	BusinessDate      string
	CounterValue      int
	HistoryCount      int
	DailyLimit        int
	CounterMismatched bool
	CapExceeded       bool
}

// Auditor recomputes the "counter equals history" and "cap respect"
// properties against the current business date's data.
type Auditor struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewAuditor(db *gorm.DB, log logger.Interface) *Auditor {
	return &Auditor{db: db, logger: log}
}

// Run audits the current business date and logs every finding. It never
// writes to the database.
func (a *Auditor) Run(ctx context.Context) ([]Finding, error) {
	businessDate := biztime.BusinessDate(biztime.NowUTC())
	return a.RunForDate(ctx, businessDate)
}

// RunForDate audits a specific business date, exposed separately so tests
// don't need to manipulate the wall clock.
func (a *Auditor) RunForDate(ctx context.Context, businessDate string) ([]Finding, error) {
	historyCounts, err := a.historyCountsByCallerAndDate(ctx, businessDate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute history counts: %w", err)
	}

	counters, err := a.countersForDate(ctx, businessDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily counters: %w", err)
	}

	limits, err := a.dailyLimits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load caller daily limits: %w", err)
	}

	seen := make(map[uint]bool)
	var findings []Finding

	for callerID, counterValue := range counters {
		seen[callerID] = true
		history := historyCounts[callerID]
		limit := limits[callerID]

		f := Finding{
			CallerID:          callerID,
			BusinessDate:      businessDate,
			CounterValue:      counterValue,
			HistoryCount:      history,
			DailyLimit:        limit,
			CounterMismatched: counterValue != history,
			CapExceeded:       limit > 0 && counterValue > limit,
		}

		if f.CounterMismatched || f.CapExceeded {
			findings = append(findings, f)
			a.logFinding(f)
		}
	}

	for callerID, history := range historyCounts {
		if seen[callerID] {
			continue
		}
		f := Finding{
			CallerID:          callerID,
			BusinessDate:      businessDate,
			CounterValue:      0,
			HistoryCount:      history,
			DailyLimit:        limits[callerID],
			CounterMismatched: history != 0,
		}
		if f.CounterMismatched {
			findings = append(findings, f)
			a.logFinding(f)
		}
	}

	a.logger.Infow("invariant audit completed",
		"business_date", businessDate,
		"findings", len(findings))

	return findings, nil
}

func (a *Auditor) logFinding(f Finding) {
	a.logger.Warnw("assignment invariant drift detected",
		"caller_id", f.CallerID,
		"business_date", f.BusinessDate,
		"counter_value", f.CounterValue,
		"history_count", f.HistoryCount,
		"daily_limit", f.DailyLimit,
		"counter_mismatched", f.CounterMismatched,
		"cap_exceeded", f.CapExceeded)
}

// historyCountsByCallerAndDate recomputes, from the assignment history
// itself, how many current (non-superseded) assignments each caller holds
// whose assigned_at falls on businessDate in the configured business
// timezone.
func (a *Auditor) historyCountsByCallerAndDate(ctx context.Context, businessDate string) (map[uint]int, error) {
	var rows []models.AssignmentModel
	err := a.db.WithContext(ctx).
		Where("status != ? AND caller_id IS NOT NULL", "reassigned-superseded").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int)
	for _, row := range rows {
		if row.CallerID == nil {
			continue
		}
		if biztime.BusinessDate(row.AssignedAt) != businessDate {
			continue
		}
		counts[*row.CallerID]++
	}
	return counts, nil
}

func (a *Auditor) countersForDate(ctx context.Context, businessDate string) (map[uint]int, error) {
	var rows []models.DailyCounterModel
	err := a.db.WithContext(ctx).
		Where("business_date = ?", businessDate).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	counters := make(map[uint]int, len(rows))
	for _, row := range rows {
		counters[row.CallerID] = row.Count
	}
	return counters, nil
}

func (a *Auditor) dailyLimits(ctx context.Context) (map[uint]int, error) {
	var rows []models.CallerModel
	err := a.db.WithContext(ctx).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	limits := make(map[uint]int, len(rows))
	for _, row := range rows {
		limits[row.ID] = row.DailyLimit
	}
	return limits, nil
}
