package assignment

import (
	"strconv"
	"time"
)

// AssignedEvent is published on successful commit of an assign or
// reassign operation. Emission is post-commit and best-effort: if the
// process crashes between commit and emit, no replay is attempted —
// readers reconcile by polling the assignment row itself.
type AssignedEvent struct {
	LeadID    uint
	CallerID  *uint
	Status    Status
	Reason    ReasonCode
	Instant   time.Time
}

// NewAssignedEvent constructs an AssignedEvent from a completed Outcome.
func NewAssignedEvent(o Outcome) AssignedEvent {
	return AssignedEvent{
		LeadID:   o.LeadID,
		CallerID: o.CallerID,
		Status:   o.Status,
		Reason:   o.Reason,
		Instant:  o.AssignedAt,
	}
}

func (e AssignedEvent) GetAggregateID() string {
	return strconv.FormatUint(uint64(e.LeadID), 10)
}

func (e AssignedEvent) GetEventType() string {
	return "assignment.assigned"
}

func (e AssignedEvent) GetOccurredAt() time.Time {
	return e.Instant
}

func (e AssignedEvent) GetVersion() int {
	return 1
}
