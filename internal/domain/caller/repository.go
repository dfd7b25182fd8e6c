package caller

import "context"

// Repository is the read-mostly view over caller profiles and their state
// assignments that the assignment engine consults. Candidate ordering must
// be stable across calls within a business day so round-robin advances
// correctly; a newly inserted caller may appear anywhere in the order, but
// order is then fixed.
type Repository interface {
	// CandidatesForState returns all active callers whose assigned-states
	// set contains state, ordered by (creation instant, id). An empty
	// result is expected whenever no caller is bound to that state; the
	// engine falls back to global routing in that case.
	CandidatesForState(ctx context.Context, state string) ([]*Caller, error)

	// CandidatesGlobal returns all active callers in the same stable
	// order, regardless of state binding.
	CandidatesGlobal(ctx context.Context) ([]*Caller, error)

	// GetByID loads a single caller, active or paused, for manual
	// reassignment's eligibility check.
	GetByID(ctx context.Context, callerID uint) (*Caller, error)

	// NameOf returns the caller's display name for event emission.
	NameOf(ctx context.Context, callerID uint) (string, error)
}
