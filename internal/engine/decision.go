package engine

import (
	"time"

	"github.com/dtorcivia/slotwatch/internal/util"
)

const day = 24 * time.Hour

// Decision is the outcome of the notification policy for one run.
type Decision struct {
	EarliestSlot time.Time
	HasSlot      bool

	// DaysUntil is only meaningful when HasSlot is set.
	DaysUntil int

	UpcomingDays     int
	SlotInNearFuture bool
	OnTheHour        bool
	HourlyDue        bool
	Debug            bool
}

// Decide applies the notification policy. A slot counts as near when its
// whole-day distance from now does not exceed upcomingDays.
func Decide(slot time.Time, found bool, now time.Time, upcomingDays int, notifyHourly, debug bool) *Decision {
	d := &Decision{
		EarliestSlot: slot,
		HasSlot:      found,
		UpcomingDays: upcomingDays,
		OnTheHour:    now.Minute() == 0,
		Debug:        debug,
	}
	if found {
		d.DaysUntil = DaysBetween(now, slot)
		d.SlotInNearFuture = d.DaysUntil <= upcomingDays
	}
	d.HourlyDue = d.OnTheHour && notifyHourly
	return d
}

// ShouldNotify reports whether any wake reason fired.
func (d *Decision) ShouldNotify() bool {
	return d.SlotInNearFuture || d.HourlyDue || d.Debug
}

// SkipReason describes why no notification is sent.
func (d *Decision) SkipReason() string {
	if d.ShouldNotify() {
		return ""
	}
	if !d.HasSlot {
		return "no appointments available"
	}
	return "earliest slot beyond lookahead"
}

// DaysBetween returns the whole days from now until slot on the wall clock,
// floored. A slot 36 hours ahead is 1 day away; one 12 hours in the past is -1.
func DaysBetween(now, slot time.Time) int {
	diff := util.Wall(slot).Sub(util.Wall(now))
	days := int(diff / day)
	if diff < 0 && diff%day != 0 {
		days--
	}
	return days
}
