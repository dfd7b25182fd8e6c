package models

import "time"

// RRPointerModel is the persisted fairness pointer: the last caller
// assigned under a given routing key. The referenced caller need not
// currently be eligible — the pointer is advisory, and rotation degrades
// gracefully to unrotated order when it no longer matches a candidate.
type RRPointerModel struct {
	Key          string `gorm:"column:key;primaryKey;size:150"`
	LastCallerID *uint  `gorm:"column:last_caller_id"`
	UpdatedAt    time.Time
}

func (RRPointerModel) TableName() string {
	return "rr_pointers"
}
