package models

// DailyCounterModel is the persisted per-caller, per-business-date
// assignment count. A row's Count must always equal the number of current
// assignment rows for that caller whose business date matches — this is
// maintained transactionally by the engine, never recomputed lazily.
type DailyCounterModel struct {
	CallerID     uint   `gorm:"column:caller_id;primaryKey"`
	BusinessDate string `gorm:"column:business_date;primaryKey;size:10"`
	Count        int    `gorm:"column:count;not null;default:0"`
}

func (DailyCounterModel) TableName() string {
	return "daily_counters"
}
