package availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/dtorcivia/slotwatch/internal/util"
)

// Accepted ISO-8601 shapes. Fractional seconds are accepted after the
// seconds field even when the layout does not list them.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05-0700",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 slot timestamp and drops its zone: the
// wall-clock reading is returned as-is in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	value := strings.TrimSpace(s)
	if strings.HasSuffix(value, "z") {
		value = strings.TrimSuffix(value, "z") + "Z"
	}
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
	}
	return time.Time{}, fmt.Errorf("invalid slot timestamp %q", s)
}

// EarliestSlot returns the earliest parseable slot in resp. When no day
// carries a usable slot, next_slot is tried as a fallback. Unparseable slots
// are skipped.
func EarliestSlot(resp *Response, loc *time.Location, logger *util.Logger) (time.Time, bool) {
	if logger == nil {
		logger = util.GetDefaultLogger()
	}

	var earliest time.Time
	found := false

	for _, day := range resp.Availabilities {
		logger.Debug("Checking date", "date", day.Date, "slots", len(day.Slots))
		for _, raw := range day.Slots {
			s, ok := rawString(raw)
			if !ok {
				logger.Debug("Skipping non-string slot", "raw", string(raw))
				continue
			}
			slot, err := ParseTimestamp(s, loc)
			if err != nil {
				logger.Debug("Error parsing slot datetime", "raw", s, "error", err)
				continue
			}
			logger.Debug("Parsed slot", "raw", s, "parsed", slot.Format(time.DateTime))
			if !found || slot.Before(earliest) {
				earliest = slot
				found = true
				logger.Debug("New earliest slot found", "slot", earliest.Format(time.DateTime))
			}
		}
	}

	if !found && len(resp.NextSlot) > 0 {
		s, ok := resp.NextSlotString()
		if !ok {
			logger.Debug("Ignoring non-string next_slot", "raw", string(resp.NextSlot))
			return earliest, false
		}
		next, err := ParseTimestamp(s, loc)
		if err != nil {
			logger.Debug("Error parsing next_slot datetime", "raw", s, "error", err)
			return earliest, false
		}
		logger.Debug("Found next_slot in response", "next_slot", next.Format(time.DateTime))
		return next, true
	}

	return earliest, found
}
