package models

import "time"

// CallerModel is the persisted shape of a caller profile.
type CallerModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:200;not null"`
	Role       string `gorm:"size:100"`
	Languages  string `gorm:"column:languages;type:text"` // comma-separated
	DailyLimit int    `gorm:"column:daily_limit;not null;default:0"`
	Status     string `gorm:"size:20;not null;index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	States []CallerStateModel `gorm:"foreignKey:CallerID"`
}

func (CallerModel) TableName() string {
	return "callers"
}

// CallerStateModel is the join row binding a caller to a normalized state
// name, realizing the many-to-many "a caller has zero or more state
// bindings" relationship as a genuine join table.
type CallerStateModel struct {
	CallerID uint   `gorm:"primaryKey"`
	State    string `gorm:"primaryKey;size:100"`
}

func (CallerStateModel) TableName() string {
	return "caller_states"
}
