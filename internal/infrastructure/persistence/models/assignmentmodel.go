package models

import "time"

// AssignmentModel is the persisted shape of an assignment decision. Only
// one row per lead_id carries Status != "reassigned-superseded" at any
// time; that row is the "current" assignment a reader should see.
//
// CurrentFlag is 1 on that row and NULL on every superseded one. NULL
// values are never compared equal by a unique index, so the composite
// unique index on (lead_id, current_flag) lets any number of superseded
// rows exist per lead while still rejecting a second concurrently
// inserted current row for the same lead_id.
type AssignmentModel struct {
	ID          uint      `gorm:"primaryKey"`
	ExternalID  string    `gorm:"column:external_id;size:20;uniqueIndex"`
	LeadID      uint      `gorm:"column:lead_id;not null;uniqueIndex:uk_assignments_lead_current,priority:1"`
	CallerID    *uint     `gorm:"column:caller_id;index"`
	AssignedAt  time.Time `gorm:"column:assigned_at;not null"`
	Reason      string    `gorm:"size:40;not null"`
	Status      string    `gorm:"size:30;not null"`
	CurrentFlag *int8     `gorm:"column:current_flag;uniqueIndex:uk_assignments_lead_current,priority:2"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}
