// Package util provides utility functions for the application.
package util

import (
	"fmt"
	"time"
	// Embed timezone database for containers without tzdata
	_ "time/tzdata"
)

// Layouts used in notification text.
const (
	AlertLayout     = "2006-01-02 15:04"
	HeartbeatLayout = "02 January 2006 15:04"
)

// DisplayFormatter formats wall-clock slot times for notifications.
// Slot times are naive, so no zone conversion happens here.
type DisplayFormatter struct {
	AlertLayout     string
	HeartbeatLayout string
}

// NewDisplayFormatter creates a formatter, falling back to the default layouts.
func NewDisplayFormatter(alertLayout, heartbeatLayout string) *DisplayFormatter {
	if alertLayout == "" {
		alertLayout = AlertLayout
	}
	if heartbeatLayout == "" {
		heartbeatLayout = HeartbeatLayout
	}
	return &DisplayFormatter{
		AlertLayout:     alertLayout,
		HeartbeatLayout: heartbeatLayout,
	}
}

// FormatAlert formats a slot for the alert and debug lines.
func (f *DisplayFormatter) FormatAlert(t time.Time) string {
	return t.Format(f.AlertLayout)
}

// FormatHeartbeat formats a slot for the hourly line.
func (f *DisplayFormatter) FormatHeartbeat(t time.Time) string {
	return t.Format(f.HeartbeatLayout)
}

// LoadLocation resolves an IANA zone name.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// Wall returns t's wall clock reading as a UTC time, dropping the zone.
// Differences between Wall values ignore DST transitions.
func Wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// Today returns the calendar date of t as YYYY-MM-DD.
func Today(t time.Time) string {
	return t.Format(time.DateOnly)
}
