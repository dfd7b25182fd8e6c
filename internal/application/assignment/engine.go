// Package assignment orchestrates the transactional assignment engine:
// given a validated lead, it selects an eligible caller under
// state-based routing, daily-cap, and round-robin fairness constraints,
// and commits the lead, its assignment, the fairness pointer, and the
// daily counter as one transaction.
package assignment

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	assignmentDomain "github.com/orris-inc/leadrouter/internal/domain/assignment"
	callerDomain "github.com/orris-inc/leadrouter/internal/domain/caller"
	"github.com/orris-inc/leadrouter/internal/domain/lead"
	"github.com/orris-inc/leadrouter/internal/domain/routing"
	"github.com/orris-inc/leadrouter/internal/domain/shared/events"
	"github.com/orris-inc/leadrouter/internal/shared/biztime"
	"github.com/orris-inc/leadrouter/internal/shared/db"
	"github.com/orris-inc/leadrouter/internal/shared/errors"
	"github.com/orris-inc/leadrouter/internal/shared/logger"
)

// Reason codes and statuses are re-exported from the domain package so
// this package's call sites read naturally as assignment.ReasonStateRoundRobin
// etc. without a second import alias at every use.
type (
	ReasonCode = assignmentDomain.ReasonCode
	Status     = assignmentDomain.Status
	Outcome    = assignmentDomain.Outcome
)

const (
	ReasonStateRoundRobin      = assignmentDomain.ReasonStateRoundRobin
	ReasonGlobalRoundRobin     = assignmentDomain.ReasonGlobalRoundRobin
	ReasonManualReassign       = assignmentDomain.ReasonManualReassign
	ReasonUnassignedCapReached = assignmentDomain.ReasonUnassignedCapReached
	ReasonUnassignedNoEligible = assignmentDomain.ReasonUnassignedNoEligible
)

// errDuplicateLead is a sentinel that unwinds the insert transaction when
// the lead's natural key already exists, so the replay path can run
// outside of a transaction that GORM has already marked for rollback.
var errDuplicateLead = stderrors.New("lead already exists for natural key")

// Engine is the transactional assignment engine. It holds no in-process
// state of its own — every piece of fairness and cap bookkeeping lives in
// the database, per the "cross-component shared state is the database"
// design note.
type Engine struct {
	leadRepo          lead.Repository
	assignmentRepo    assignmentDomain.Repository
	callerRepo        callerDomain.Repository
	fairnessStore     routing.FairnessStore
	dailyCounterStore routing.DailyCounterStore
	txManager         *db.TransactionManager
	dispatcher        events.EventPublisher
	clock             clockwork.Clock
	logger            logger.Interface
}

// NewEngine wires the engine to its collaborators. clock is injected so
// tests can simulate business-date rollover without wall-clock tricks;
// production callers pass clockwork.NewRealClock().
func NewEngine(
	leadRepo lead.Repository,
	assignmentRepo assignmentDomain.Repository,
	callerRepo callerDomain.Repository,
	fairnessStore routing.FairnessStore,
	dailyCounterStore routing.DailyCounterStore,
	txManager *db.TransactionManager,
	dispatcher events.EventPublisher,
	clock clockwork.Clock,
	log logger.Interface,
) *Engine {
	return &Engine{
		leadRepo:          leadRepo,
		assignmentRepo:    assignmentRepo,
		callerRepo:        callerRepo,
		fairnessStore:     fairnessStore,
		dailyCounterStore: dailyCounterStore,
		txManager:         txManager,
		dispatcher:        dispatcher,
		clock:             clock,
		logger:            log,
	}
}

// Assign is the engine's primary entry point: §4.5.1 selection plus
// §4.5.2 idempotency. It consumes an already-validated lead and returns
// the outcome synchronously; a transient error means the caller should
// retry the whole call with a fresh transaction.
func (e *Engine) Assign(ctx context.Context, cmd AssignCommand) (*Outcome, error) {
	newLead, err := lead.NewLead(cmd.Name, cmd.Phone, cmd.SourceTimestamp, cmd.LeadSource, cmd.City, cmd.State, cmd.Metadata)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	var outcome Outcome
	var asgn *assignmentDomain.Assignment

	txErr := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := e.leadRepo.Insert(ctx, newLead); err != nil {
			if errors.IsDuplicateError(err) {
				return errDuplicateLead
			}
			return fmt.Errorf("failed to insert lead: %w", err)
		}

		now := e.clock.Now()
		businessDate := biztime.BusinessDate(now)

		callerID, reason, err := e.selectCaller(ctx, newLead.State(), businessDate)
		if err != nil {
			return err
		}

		asgn, err = assignmentDomain.NewAssignment(newLead.ID(), callerID, reason, now)
		if err != nil {
			return err
		}

		if err := e.assignmentRepo.Insert(ctx, asgn); err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}

		outcome = assignmentDomain.FromAssignment(asgn, false)
		return nil
	})

	if txErr != nil {
		if stderrors.Is(txErr, errDuplicateLead) {
			return e.loadReplayedOutcome(ctx, cmd.Phone, cmd.SourceTimestamp)
		}
		if errors.IsDeadlockError(txErr) {
			e.logger.Warnw("assignment transaction conflict, retry required", "phone", cmd.Phone, "error", txErr)
			return nil, errors.NewTransientConflictError("assignment transaction conflict", txErr.Error())
		}
		return nil, txErr
	}

	e.publish(outcome)
	e.logger.Infow("lead assigned",
		"lead_id", outcome.LeadID, "caller_id", outcome.CallerID, "reason", outcome.Reason, "status", outcome.Status)

	return &outcome, nil
}

// loadReplayedOutcome re-serves the prior outcome for a lead whose
// natural key already exists. It runs read-only, outside the aborted
// insert transaction, and never touches pointers or counters.
func (e *Engine) loadReplayedOutcome(ctx context.Context, phone string, sourceTimestamp time.Time) (*Outcome, error) {
	existing, err := e.leadRepo.FindByNaturalKey(ctx, phone, sourceTimestamp)
	if err != nil {
		return nil, fmt.Errorf("failed to load existing lead for idempotent replay: %w", err)
	}
	if existing == nil {
		return nil, errors.NewInternalError("duplicate lead insert reported but natural key lookup found nothing")
	}

	current, err := e.assignmentRepo.CurrentForLead(ctx, existing.ID())
	if err != nil {
		return nil, fmt.Errorf("failed to load current assignment for replayed lead %d: %w", existing.ID(), err)
	}
	if current == nil {
		return nil, errors.NewInternalError("duplicate lead has no current assignment row")
	}

	outcome := assignmentDomain.FromAssignment(current, true)
	e.logger.Infow("idempotent lead replay", "lead_id", outcome.LeadID, "caller_id", outcome.CallerID)

	return &outcome, nil
}

func (e *Engine) publish(outcome Outcome) {
	event := assignmentDomain.NewAssignedEvent(outcome)
	if err := e.dispatcher.Publish(event); err != nil {
		e.logger.Errorw("failed to publish assignment event", "lead_id", outcome.LeadID, "error", err)
	}
}
