package dto

import (
	"time"

	"github.com/orris-inc/leadrouter/internal/application/assignment"
)

// CreateLeadRequest is the inbound webhook payload for lead ingestion.
// SourceTimestamp must be RFC3339; struct-tag validation happens at the
// transport boundary, before the engine ever sees the command.
type CreateLeadRequest struct {
	Name            string                 `json:"name"`
	Phone           string                 `json:"phone" binding:"required"`
	SourceTimestamp time.Time              `json:"source_timestamp" binding:"required"`
	LeadSource      string                 `json:"lead_source"`
	City            string                 `json:"city"`
	State           string                 `json:"state"`
	Metadata        map[string]interface{} `json:"metadata,omitempty"`
}

func (r *CreateLeadRequest) ToCommand() assignment.AssignCommand {
	return assignment.AssignCommand{
		Name:            r.Name,
		Phone:           r.Phone,
		SourceTimestamp: r.SourceTimestamp,
		LeadSource:      r.LeadSource,
		City:            r.City,
		State:           r.State,
		Metadata:        r.Metadata,
	}
}

// ReassignLeadRequest manually overrides routing for an existing lead.
// TargetCallerID nil means "re-run auto-selection".
type ReassignLeadRequest struct {
	TargetCallerID *uint `json:"target_caller_id"`
}

func (r *ReassignLeadRequest) ToCommand(leadID uint) assignment.ReassignCommand {
	return assignment.ReassignCommand{
		LeadID:         leadID,
		TargetCallerID: r.TargetCallerID,
	}
}

// AssignmentOutcomeResponse is the JSON shape returned for both assign and
// reassign calls.
type AssignmentOutcomeResponse struct {
	LeadID       uint   `json:"lead_id"`
	AssignmentID string `json:"assignment_id"`
	CallerID     *uint  `json:"caller_id"`
	Status       string `json:"status"`
	Reason       string `json:"reason"`
	AssignedAt   string `json:"assigned_at"`
	Replayed     bool   `json:"replayed"`
}

func FromOutcome(o *assignment.Outcome) AssignmentOutcomeResponse {
	return AssignmentOutcomeResponse{
		LeadID:       o.LeadID,
		AssignmentID: o.ExternalID,
		CallerID:     o.CallerID,
		Status:       string(o.Status),
		Reason:       string(o.Reason),
		AssignedAt:   o.AssignedAt.Format(time.RFC3339),
		Replayed:     o.Replayed,
	}
}
