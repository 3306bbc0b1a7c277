package engine

import (
	"testing"
	"time"
)

func TestDaysBetween(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		slot time.Time
		want int
	}{
		{"same instant", now, 0},
		{"23 hours ahead", now.Add(23 * time.Hour), 0},
		{"25 hours ahead", now.Add(25 * time.Hour), 1},
		{"exactly 10 days", now.AddDate(0, 0, 10), 10},
		{"just under 10 days", now.AddDate(0, 0, 10).Add(-time.Minute), 9},
		{"one hour ago", now.Add(-time.Hour), -1},
		{"exactly one day ago", now.AddDate(0, 0, -1), -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DaysBetween(now, tc.slot); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestDaysBetweenIgnoresDSTShift(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}

	// Clocks go forward on 2024-03-31; the wall-clock gap is still one day.
	now := time.Date(2024, time.March, 30, 10, 0, 0, 0, berlin)
	slot := time.Date(2024, time.March, 31, 10, 0, 0, 0, berlin)
	if got := DaysBetween(now, slot); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
}

func TestDecide(t *testing.T) {
	base := time.Date(2024, time.January, 10, 14, 30, 0, 0, time.UTC)
	onTheHour := time.Date(2024, time.January, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		slotDays     int
		found        bool
		now          time.Time
		notifyHourly bool
		debug        bool
		wantNear     bool
		wantHourly   bool
		wantNotify   bool
	}{
		{"near slot", 10, true, base, false, false, true, false, true},
		{"slot on the boundary", 15, true, base, false, false, true, false, true},
		{"far slot hourly on the hour", 40, true, onTheHour, true, false, false, true, true},
		{"far slot hourly off the hour", 40, true, base, true, false, false, false, false},
		{"far slot on the hour without hourly flag", 40, true, onTheHour, false, false, false, false, false},
		{"no slot debug", 0, false, base, false, true, false, false, true},
		{"no slot hourly on the hour", 0, false, onTheHour, true, false, false, true, true},
		{"no slot", 0, false, base, false, false, false, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var slot time.Time
			if tc.found {
				slot = tc.now.AddDate(0, 0, tc.slotDays)
			}
			d := Decide(slot, tc.found, tc.now, 15, tc.notifyHourly, tc.debug)

			if d.SlotInNearFuture != tc.wantNear {
				t.Errorf("SlotInNearFuture: expected %v, got %v", tc.wantNear, d.SlotInNearFuture)
			}
			if d.HourlyDue != tc.wantHourly {
				t.Errorf("HourlyDue: expected %v, got %v", tc.wantHourly, d.HourlyDue)
			}
			if d.ShouldNotify() != tc.wantNotify {
				t.Errorf("ShouldNotify: expected %v, got %v", tc.wantNotify, d.ShouldNotify())
			}
			if tc.found && d.DaysUntil != tc.slotDays {
				t.Errorf("DaysUntil: expected %d, got %d", tc.slotDays, d.DaysUntil)
			}
		})
	}
}

func TestDecidePastSlotCountsAsNear(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 0, 0, 0, time.UTC)
	d := Decide(now.Add(-3*time.Hour), true, now, 15, false, false)

	if d.DaysUntil != -1 {
		t.Fatalf("expected -1 days, got %d", d.DaysUntil)
	}
	if !d.SlotInNearFuture {
		t.Fatalf("expected past slot to count as near")
	}
}

func TestSkipReason(t *testing.T) {
	now := time.Date(2024, time.January, 10, 12, 30, 0, 0, time.UTC)

	if got := Decide(time.Time{}, false, now, 15, false, false).SkipReason(); got != "no appointments available" {
		t.Errorf("unexpected reason: %q", got)
	}
	if got := Decide(now.AddDate(0, 0, 40), true, now, 15, false, false).SkipReason(); got != "earliest slot beyond lookahead" {
		t.Errorf("unexpected reason: %q", got)
	}
	if got := Decide(now.AddDate(0, 0, 1), true, now, 15, false, false).SkipReason(); got != "" {
		t.Errorf("expected no reason when notifying, got %q", got)
	}
}
