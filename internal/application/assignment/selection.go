package assignment

import (
	"context"
	"fmt"

	callerDomain "github.com/orris-inc/leadrouter/internal/domain/caller"
	"github.com/orris-inc/leadrouter/internal/domain/routing"
)

// selection is the internal result of a single round-robin walk: the
// caller chosen and the reason that walk produces. A nil selection means
// the walk found no uncapped candidate.
type selection struct {
	callerID uint
	reason   ReasonCode
}

// rotateAfter reorders candidates so that the element immediately after
// last is first, per §4.5.1 step 3's rotation rule. If last is absent
// from candidates the list is returned unrotated — a stale or foreign
// pointer degrades gracefully rather than erroring.
func rotateAfter(candidates []*callerDomain.Caller, last *uint) []*callerDomain.Caller {
	if last == nil {
		return candidates
	}

	idx := -1
	for i, c := range candidates {
		if c.ID() == *last {
			idx = i
			break
		}
	}
	if idx == -1 {
		return candidates
	}

	rotated := make([]*callerDomain.Caller, 0, len(candidates))
	rotated = append(rotated, candidates[idx+1:]...)
	rotated = append(rotated, candidates[:idx+1]...)
	return rotated
}

// walkForUncapped locks the pointer for key, rotates candidates around
// its last value, and walks the rotation looking for the first candidate
// with room under its daily cap. The counter row of a skipped (capped)
// candidate is locked but not incremented, and that lock is held until
// the enclosing transaction ends; only the winning candidate's counter
// moves.
func (e *Engine) walkForUncapped(
	ctx context.Context,
	key routing.Key,
	candidates []*callerDomain.Caller,
	businessDate string,
	reason ReasonCode,
) (*selection, error) {
	last, err := e.fairnessStore.LockAndRead(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to lock fairness pointer %q: %w", key, err)
	}

	order := rotateAfter(candidates, last)

	for _, c := range order {
		count, err := e.dailyCounterStore.LockAndRead(ctx, c.ID(), businessDate)
		if err != nil {
			return nil, fmt.Errorf("failed to lock daily counter for caller %d: %w", c.ID(), err)
		}

		if !c.Uncapped(count) {
			continue
		}

		if err := e.dailyCounterStore.Increment(ctx, c.ID(), businessDate); err != nil {
			return nil, fmt.Errorf("failed to increment daily counter for caller %d: %w", c.ID(), err)
		}
		if err := e.fairnessStore.Write(ctx, key, c.ID()); err != nil {
			return nil, fmt.Errorf("failed to write fairness pointer %q: %w", key, err)
		}

		return &selection{callerID: c.ID(), reason: reason}, nil
	}

	return nil, nil
}

// selectCaller runs the full §4.5.1 selection algorithm: state-scoped
// round robin first (only if the lead carries a state and has at least
// one state candidate), then global fallback, then unassigned with the
// reason that distinguishes "nobody is configured at all" from "everyone
// configured is at cap today".
func (e *Engine) selectCaller(ctx context.Context, state string, businessDate string) (*uint, ReasonCode, error) {
	if len(state) > 0 {
		normalized := routing.NormalizeState(state)
		stateCandidates, err := e.callerRepo.CandidatesForState(ctx, normalized)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load state candidates for %q: %w", normalized, err)
		}

		// Per §5: the state pointer is never locked when there are no
		// state candidates to walk, so a stateless fallback never pays for
		// a lock it has no use for.
		if len(stateCandidates) > 0 {
			sel, err := e.walkForUncapped(ctx, routing.StateKey(state), stateCandidates, businessDate, ReasonStateRoundRobin)
			if err != nil {
				return nil, "", err
			}
			if sel != nil {
				id := sel.callerID
				return &id, sel.reason, nil
			}
		}
	}

	globalCandidates, err := e.callerRepo.CandidatesGlobal(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load global candidates: %w", err)
	}

	if len(globalCandidates) > 0 {
		sel, err := e.walkForUncapped(ctx, routing.GlobalKey(), globalCandidates, businessDate, ReasonGlobalRoundRobin)
		if err != nil {
			return nil, "", err
		}
		if sel != nil {
			id := sel.callerID
			return &id, sel.reason, nil
		}
	}

	if len(globalCandidates) == 0 {
		return nil, ReasonUnassignedNoEligible, nil
	}
	return nil, ReasonUnassignedCapReached, nil
}
