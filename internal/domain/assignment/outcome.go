package assignment

import "time"

// Outcome is the sum type the engine returns for every assign/reassign
// call: either Assigned{caller, reason} or Unassigned{reason}. Expressed
// as a single struct with a nullable caller rather than two concrete
// types, so a single return value threads cleanly through transactions
// and transport encoders while the reason code keeps the closed
// enumeration's meaning.
type Outcome struct {
	LeadID     uint
	ExternalID string
	CallerID   *uint
	Status     Status
	Reason     ReasonCode
	AssignedAt time.Time

	// Replayed is true when this outcome is being re-served for an
	// idempotent retry rather than freshly computed. No counter or
	// pointer moves when Replayed is true; it exists purely so the
	// transport layer can log retries distinctly from fresh assignments.
	Replayed bool
}

// FromAssignment builds an Outcome from a persisted Assignment row.
func FromAssignment(a *Assignment, replayed bool) Outcome {
	return Outcome{
		LeadID:     a.LeadID(),
		ExternalID: a.ExternalID(),
		CallerID:   a.CallerID(),
		Status:     a.Status(),
		Reason:     a.Reason(),
		AssignedAt: a.AssignedAt(),
		Replayed:   replayed,
	}
}

// IsAssigned reports whether the outcome bound the lead to a caller.
func (o Outcome) IsAssigned() bool {
	return o.Status == StatusAssigned
}
