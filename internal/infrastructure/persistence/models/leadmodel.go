package models

import (
	"time"

	"gorm.io/datatypes"
)

// LeadModel is the persisted shape of an inbound sales lead. The unique
// index on (phone, source_timestamp) is the idempotency boundary: a second
// insert attempt for the same natural key fails with a duplicate-key error
// that the repository translates into a replay lookup.
type LeadModel struct {
	ID              uint      `gorm:"primaryKey"`
	ExternalID      string    `gorm:"column:external_id;size:20;uniqueIndex"`
	Name            string    `gorm:"size:200"`
	Phone           string    `gorm:"size:32;not null;uniqueIndex:uk_leads_natural_key"`
	SourceTimestamp time.Time `gorm:"column:source_timestamp;not null;uniqueIndex:uk_leads_natural_key"`
	LeadSource      string    `gorm:"size:100"`
	City            string    `gorm:"size:100"`
	State           string    `gorm:"size:100;index"`
	Metadata        datatypes.JSON
	CreatedAt       time.Time
}

func (LeadModel) TableName() string {
	return "leads"
}
