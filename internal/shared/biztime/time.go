// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used to
// compute the civil date that daily-cap arithmetic buckets on.
//
// Design principles:
// - All time storage is in UTC
// - Daily-cap bucketing must derive "today" from the business timezone's
//   civil date, never from a fixed UTC offset or the process's local time
// - Implicit Local timezone is prohibited
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Asia/Kolkata"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to DefaultTimezone.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location.
// If not explicitly initialized, automatically initializes with the default timezone.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// BusinessDate maps an instant to its civil date string (YYYY-MM-DD) in the
// configured business timezone. This is the single source of "today" the
// assignment engine is allowed to consult for daily-cap arithmetic; the
// timezone's civil date, not a fixed 24-hour window, is what decides when
// a day rolls over, so daylight-saving transitions never double-count or
// skip a day.
func BusinessDate(t time.Time) string {
	return t.In(Location()).Format("2006-01-02")
}

// ToBizTimezone converts a UTC time to business timezone for display.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}
