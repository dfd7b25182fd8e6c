package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/orris-inc/leadrouter/internal/domain/routing"
	"github.com/orris-inc/leadrouter/internal/infrastructure/persistence/models"
	"github.com/orris-inc/leadrouter/internal/shared/db"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// DailyCounterStore persists the daily_counters table: one row per
// (caller, business date) holding the number of current assignments
// committed to that caller on that date. The row is created lazily the
// first time a caller is touched on a given date, locked with the same
// SELECT ... FOR UPDATE shape as the fairness pointer.
type DailyCounterStore struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewDailyCounterStore(database *gorm.DB, log logger.Interface) routing.DailyCounterStore {
	return &DailyCounterStore{
		db:     database,
		logger: log,
	}
}

func (s *DailyCounterStore) LockAndRead(ctx context.Context, callerID uint, businessDate string) (int, error) {
	txDB := db.GetTxFromContext(ctx, s.db)

	var row models.DailyCounterModel
	err := txDB.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("caller_id = ? AND business_date = ?", callerID, businessDate).
		First(&row).Error

	if err == nil {
		return row.Count, nil
	}

	if err == gorm.ErrRecordNotFound {
		newRow := &models.DailyCounterModel{
			CallerID:     callerID,
			BusinessDate: businessDate,
			Count:        0,
		}
		if createErr := txDB.Create(newRow).Error; createErr != nil {
			return 0, fmt.Errorf("failed to create daily counter for caller %d on %s: %w", callerID, businessDate, createErr)
		}
		return 0, nil
	}

	return 0, fmt.Errorf("failed to lock daily counter for caller %d on %s: %w", callerID, businessDate, err)
}

// Increment must run within the same transaction that obtained the row's
// lock via LockAndRead.
func (s *DailyCounterStore) Increment(ctx context.Context, callerID uint, businessDate string) error {
	return s.addDelta(ctx, callerID, businessDate, 1)
}

// Decrement is used only by manual reassignment to undo the same-day
// counter effect of the assignment being superseded.
func (s *DailyCounterStore) Decrement(ctx context.Context, callerID uint, businessDate string) error {
	return s.addDelta(ctx, callerID, businessDate, -1)
}

func (s *DailyCounterStore) addDelta(ctx context.Context, callerID uint, businessDate string, delta int) error {
	txDB := db.GetTxFromContext(ctx, s.db)

	result := txDB.Model(&models.DailyCounterModel{}).
		Where("caller_id = ? AND business_date = ?", callerID, businessDate).
		Update("count", gorm.Expr("count + ?", delta))
	if result.Error != nil {
		return fmt.Errorf("failed to update daily counter for caller %d on %s: %w", callerID, businessDate, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("daily counter for caller %d on %s does not exist, LockAndRead must run first", callerID, businessDate)
	}

	return nil
}
