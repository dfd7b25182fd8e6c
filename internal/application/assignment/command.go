package assignment

import "time"

// AssignCommand carries an already-validated lead payload into the engine.
// Validation of shape (non-empty phone, parseable timestamp) happens at
// the transport boundary; the engine trusts this struct as-is and treats
// a blank State as an explicit signal to route globally.
type AssignCommand struct {
	Name            string
	Phone           string
	SourceTimestamp time.Time
	LeadSource      string
	City            string
	State           string
	Metadata        map[string]interface{}
}

// ReassignCommand targets a specific caller, or nil to re-run
// auto-selection against the lead's current state.
type ReassignCommand struct {
	LeadID         uint
	TargetCallerID *uint
}
