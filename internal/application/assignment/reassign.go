package assignment

import (
	"context"
	"fmt"

	assignmentDomain "github.com/orris-inc/leadrouter/internal/domain/assignment"
	"github.com/orris-inc/leadrouter/internal/shared/biztime"
	"github.com/orris-inc/leadrouter/internal/shared/errors"
)

// Reassign implements §4.5.3: a manual override that either re-runs
// auto-selection (target nil) or pins the lead to a specific active
// caller, superseding the previous assignment row and adjusting
// same-day counters. Historical days are never retroactively adjusted.
func (e *Engine) Reassign(ctx context.Context, cmd ReassignCommand) (*Outcome, error) {
	var outcome Outcome

	txErr := e.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		currentLead, err := e.leadRepo.GetByID(ctx, cmd.LeadID)
		if err != nil {
			return fmt.Errorf("failed to load lead %d: %w", cmd.LeadID, err)
		}
		if currentLead == nil {
			return errors.NewNotFoundError("lead not found")
		}

		previous, err := e.assignmentRepo.CurrentForLead(ctx, cmd.LeadID)
		if err != nil {
			return fmt.Errorf("failed to load current assignment for lead %d: %w", cmd.LeadID, err)
		}
		if previous == nil {
			return errors.NewInternalError("lead has no current assignment to reassign")
		}

		now := e.clock.Now()
		businessDate := biztime.BusinessDate(now)

		var newCallerID *uint
		var reason ReasonCode
		manualIncrementNeeded := false

		if cmd.TargetCallerID == nil {
			newCallerID, reason, err = e.selectCaller(ctx, currentLead.State(), businessDate)
			if err != nil {
				return err
			}
		} else {
			target, err := e.callerRepo.GetByID(ctx, *cmd.TargetCallerID)
			if err != nil {
				return fmt.Errorf("failed to load target caller %d: %w", *cmd.TargetCallerID, err)
			}
			if target == nil {
				return errors.NewValidationError("target caller does not exist")
			}
			if !target.IsActive() {
				return errors.NewValidationError("target caller is not active")
			}

			id := target.ID()
			newCallerID = &id
			reason = ReasonManualReassign
			manualIncrementNeeded = true
		}

		previousCallerID := previous.CallerID()
		if previousCallerID != nil {
			previousDate := biztime.BusinessDate(previous.AssignedAt())
			if previousDate == businessDate {
				if _, err := e.dailyCounterStore.LockAndRead(ctx, *previousCallerID, previousDate); err != nil {
					return fmt.Errorf("failed to lock previous caller's counter: %w", err)
				}
				if err := e.dailyCounterStore.Decrement(ctx, *previousCallerID, previousDate); err != nil {
					return fmt.Errorf("failed to decrement previous caller's counter: %w", err)
				}
			}
		}

		if manualIncrementNeeded && newCallerID != nil {
			if _, err := e.dailyCounterStore.LockAndRead(ctx, *newCallerID, businessDate); err != nil {
				return fmt.Errorf("failed to lock new caller's counter: %w", err)
			}
			if err := e.dailyCounterStore.Increment(ctx, *newCallerID, businessDate); err != nil {
				return fmt.Errorf("failed to increment new caller's counter: %w", err)
			}
		}

		previous.Supersede()
		if err := e.assignmentRepo.Update(ctx, previous); err != nil {
			return fmt.Errorf("failed to supersede previous assignment: %w", err)
		}

		newAssignment, err := assignmentDomain.NewAssignment(cmd.LeadID, newCallerID, reason, now)
		if err != nil {
			return err
		}
		if err := e.assignmentRepo.Insert(ctx, newAssignment); err != nil {
			return fmt.Errorf("failed to insert reassignment: %w", err)
		}

		outcome = assignmentDomain.FromAssignment(newAssignment, false)
		return nil
	})

	if txErr != nil {
		if errors.IsDeadlockError(txErr) {
			e.logger.Warnw("reassignment transaction conflict, retry required", "lead_id", cmd.LeadID, "error", txErr)
			return nil, errors.NewTransientConflictError("reassignment transaction conflict", txErr.Error())
		}
		return nil, txErr
	}

	e.publish(outcome)
	e.logger.Infow("lead reassigned",
		"lead_id", outcome.LeadID, "caller_id", outcome.CallerID, "reason", outcome.Reason)

	return &outcome, nil
}
