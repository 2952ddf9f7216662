package day

import (
	"time"

	"github.com/google/uuid"
)

// SurgeryDay maps to the surgery_day table. One row per calendar date; the
// editable flag controls whether that day's schedule may still be changed.
type SurgeryDay struct {
	ID       uuid.UUID `db:"id" json:"id"`
	Date     time.Time `db:"date" json:"date"`
	Editable bool      `db:"editable" json:"editable"`
}

// Policy captures the two weekday rules that differ between deployments.
type Policy struct {
	// SkipSundayNext moves the default scheduling day from a Sunday
	// "tomorrow" forward to Monday.
	SkipSundayNext bool
	// SaturdayEditable lets a Saturday start out editable when its day
	// record is first created.
	SaturdayEditable bool
}

// InitialEditable returns the editable flag a freshly created day gets.
// Sundays are never editable; Saturdays follow the policy.
func (p Policy) InitialEditable(date time.Time) bool {
	switch date.Weekday() {
	case time.Sunday:
		return false
	case time.Saturday:
		return p.SaturdayEditable
	default:
		return true
	}
}

// Midnight truncates a timestamp to its calendar date in UTC, the canonical
// form every date passed to this package is normalized to.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
