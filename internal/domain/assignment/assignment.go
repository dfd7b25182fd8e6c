package assignment

import (
	"fmt"
	"time"

	"github.com/orris-inc/leadrouter/internal/shared/id"
)

// Assignment is the decision binding a lead to a caller, or marking it
// unassigned. Exactly one assignment row is the "current" one for a given
// lead id; a manual reassignment supersedes the previous row rather than
// mutating the lead.
type Assignment struct {
	id         uint
	externalID string
	leadID     uint
	callerID   *uint
	assignedAt time.Time
	reason     ReasonCode
	status     Status
}

// NewAssignment constructs a fresh assignment row for the given lead and
// outcome. callerID is nil for an unassigned outcome.
func NewAssignment(leadID uint, callerID *uint, reason ReasonCode, assignedAt time.Time) (*Assignment, error) {
	if leadID == 0 {
		return nil, fmt.Errorf("lead id is required")
	}
	if !reason.IsValid() {
		return nil, fmt.Errorf("invalid reason code: %s", reason)
	}

	status := StatusAssigned
	if callerID == nil {
		status = StatusUnassigned
	}

	externalID, err := id.GenerateWithPrefix(id.PrefixAssignment, id.DefaultLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate assignment external id: %w", err)
	}

	return &Assignment{
		externalID: externalID,
		leadID:     leadID,
		callerID:   callerID,
		assignedAt: assignedAt,
		reason:     reason,
		status:     status,
	}, nil
}

// ReconstructAssignment rebuilds an Assignment from persisted fields.
func ReconstructAssignment(
	dbID uint,
	externalID string,
	leadID uint,
	callerID *uint,
	assignedAt time.Time,
	reason ReasonCode,
	status Status,
) (*Assignment, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("assignment id cannot be zero")
	}
	if leadID == 0 {
		return nil, fmt.Errorf("lead id is required")
	}
	if !reason.IsValid() {
		return nil, fmt.Errorf("invalid reason code: %s", reason)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Assignment{
		id:         dbID,
		externalID: externalID,
		leadID:     leadID,
		callerID:   callerID,
		assignedAt: assignedAt,
		reason:     reason,
		status:     status,
	}, nil
}

func (a *Assignment) ID() uint               { return a.id }
func (a *Assignment) ExternalID() string     { return a.externalID }
func (a *Assignment) LeadID() uint           { return a.leadID }
func (a *Assignment) AssignedAt() time.Time  { return a.assignedAt }
func (a *Assignment) Reason() ReasonCode     { return a.reason }
func (a *Assignment) Status() Status         { return a.status }

// CallerID returns the assigned caller id, or nil if unassigned.
func (a *Assignment) CallerID() *uint {
	if a.callerID == nil {
		return nil
	}
	id := *a.callerID
	return &id
}

// Supersede marks this row as no longer current, used when a manual
// reassignment replaces it.
func (a *Assignment) Supersede() {
	a.status = StatusReassignedSuperseded
}

// SetID assigns the database-generated identifier after insertion.
func (a *Assignment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assignment id is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment id cannot be zero")
	}
	a.id = id
	return nil
}
