package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/dtorcivia/slotwatch/internal/config"
)

func testBooking() *config.BookingConfig {
	return &config.BookingConfig{
		URL:   "https://www.doctolib.de/praxis/berlin/dr-x",
		Label: "doctolib.de",
	}
}

func TestComposeNearFutureAlert(t *testing.T) {
	now := time.Date(2024, time.January, 1, 8, 30, 0, 0, time.UTC)
	slot := time.Date(2024, time.January, 11, 9, 15, 0, 0, time.UTC)
	d := Decide(slot, true, now, 15, false, false)

	got := Compose(d, testBooking(), nil)
	want := "🔥 Appointment available in 10 days! (2024-01-11 09:15)\n" +
		`Book now on <a href="https://www.doctolib.de/praxis/berlin/dr-x">doctolib.de</a>.`
	if got != want {
		t.Fatalf("unexpected message:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "🐌") {
		t.Fatalf("near-future alert must not carry a heartbeat line")
	}
}

func TestComposeHeartbeatOnly(t *testing.T) {
	now := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2024, time.February, 10, 9, 15, 0, 0, time.UTC)
	d := Decide(slot, true, now, 15, true, false)

	got := Compose(d, testBooking(), nil)
	want := "🐌 Next available: <i>10 February 2024 09:15</i>\n" +
		`Book now on <a href="https://www.doctolib.de/praxis/berlin/dr-x">doctolib.de</a>.`
	if got != want {
		t.Fatalf("unexpected message:\n%s\nwant:\n%s", got, want)
	}
	if strings.Contains(got, "🔥") {
		t.Fatalf("heartbeat-only message must not carry an alert line")
	}
}

func TestComposeLabelAndMoveLink(t *testing.T) {
	now := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	slot := time.Date(2024, time.January, 3, 10, 0, 0, 0, time.UTC)
	d := Decide(slot, true, now, 15, true, false)

	booking := testBooking()
	booking.AppointmentName = "Dermatology & Co"
	booking.MoveURL = "https://www.doctolib.de/account/appointments?id=1&x=2"

	lines := strings.Split(Compose(d, booking, nil), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d: %q", len(lines), lines)
	}
	if lines[0] != "👨‍⚕️👩‍⚕️ Dermatology &amp; Co" {
		t.Errorf("unexpected label line: %q", lines[0])
	}
	if lines[1] != "🔥 Appointment available in 2 days! (2024-01-03 10:00)" {
		t.Errorf("unexpected alert line: %q", lines[1])
	}
	if lines[2] != `<a href="https://www.doctolib.de/account/appointments?id=1&amp;x=2">🚚 Move existing booking</a>.` {
		t.Errorf("unexpected move line: %q", lines[2])
	}
	if lines[3] != "🐌 Next available: <i>03 January 2024 10:00</i>" {
		t.Errorf("unexpected heartbeat line: %q", lines[3])
	}
	if !strings.HasPrefix(lines[4], "Book now on ") {
		t.Errorf("unexpected closing line: %q", lines[4])
	}
}

func TestComposeDebugLines(t *testing.T) {
	now := time.Date(2024, time.January, 1, 8, 30, 0, 0, time.UTC)

	none := Compose(Decide(time.Time{}, false, now, 15, false, true), testBooking(), nil)
	if !strings.HasPrefix(none, "🔍 Debug: No appointments available\n") {
		t.Errorf("unexpected debug message: %q", none)
	}

	slot := time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
	far := Compose(Decide(slot, true, now, 15, false, true), testBooking(), nil)
	if !strings.HasPrefix(far, "🔍 Debug: Next appointment in 60 days (2024-03-01 09:00)\n") {
		t.Errorf("unexpected debug message: %q", far)
	}
}

func TestComposeNoHeartbeatWithoutSlot(t *testing.T) {
	now := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	got := Compose(Decide(time.Time{}, false, now, 15, true, false), testBooking(), nil)

	if got != `Book now on <a href="https://www.doctolib.de/praxis/berlin/dr-x">doctolib.de</a>.` {
		t.Fatalf("expected closing line only, got %q", got)
	}
}

func TestComposeDefaultLabel(t *testing.T) {
	now := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	booking := &config.BookingConfig{URL: "https://example.org/"}

	got := Compose(Decide(time.Time{}, false, now, 15, false, true), booking, nil)
	if !strings.HasSuffix(got, `<a href="https://example.org/">`+config.DefaultBookingLabel+`</a>.`) {
		t.Fatalf("expected default booking label, got %q", got)
	}
}
