package availability

import (
	"encoding/json"
	"testing"
	"time"
)

func decodeResponse(t *testing.T, body string) *Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal([]byte(body), &resp); err != nil {
		t.Fatalf("failed to decode fixture: %v", err)
	}
	return &resp
}

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01T10:00:00Z", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00.000+01:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01T10:00:00+0200", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2024-01-01 07:45:00", time.Date(2024, 1, 1, 7, 45, 0, 0, time.UTC)},
		{"2024-01-01T07:45", time.Date(2024, 1, 1, 7, 45, 0, 0, time.UTC)},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in, time.UTC)
		if err != nil {
			t.Errorf("ParseTimestamp(%q) error: %v", tc.in, err)
			continue
		}
		if !got.Equal(tc.want) {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []string{"", "tomorrow", "2024-13-01T10:00:00Z", "01/02/2024 10:00"} {
		if _, err := ParseTimestamp(bad, time.UTC); err == nil {
			t.Errorf("ParseTimestamp(%q) expected error", bad)
		}
	}
}

func TestParseTimestampKeepsWallClockInLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Fatalf("LoadLocation failed: %v", err)
	}
	got, err := ParseTimestamp("2024-06-01T09:00:00Z", berlin)
	if err != nil {
		t.Fatalf("ParseTimestamp failed: %v", err)
	}
	if got.Hour() != 9 || got.Location() != berlin {
		t.Fatalf("expected 09:00 wall clock in Berlin, got %v", got)
	}
}

func TestEarliestSlot(t *testing.T) {
	resp := decodeResponse(t, `{
		"total": 2,
		"availabilities": [
			{"date": "2024-01-01", "slots": ["2024-01-01T10:00:00Z"]},
			{"date": "2024-01-02", "slots": []},
			{"date": "2024-01-03", "slots": ["2024-01-03T09:00:00Z"]}
		]
	}`)

	got, ok := EarliestSlot(resp, time.UTC, nil)
	if !ok {
		t.Fatalf("expected a slot")
	}
	want := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("earliest = %v, want %v", got, want)
	}
}

func TestEarliestSlotUnorderedInput(t *testing.T) {
	resp := decodeResponse(t, `{"availabilities": [
		{"date": "2024-01-05", "slots": ["2024-01-05T16:00:00Z", "2024-01-05T08:15:00Z"]},
		{"date": "2024-01-04", "slots": ["2024-01-04T18:30:00"]}
	]}`)

	got, ok := EarliestSlot(resp, time.UTC, nil)
	if !ok || !got.Equal(time.Date(2024, 1, 4, 18, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected earliest slot %v (%v)", got, ok)
	}
}

func TestEarliestSlotFallsBackToNextSlot(t *testing.T) {
	resp := decodeResponse(t, `{"total": 0, "availabilities": [], "next_slot": "2024-02-01T08:00:00Z"}`)

	got, ok := EarliestSlot(resp, time.UTC, nil)
	if !ok {
		t.Fatalf("expected next_slot fallback")
	}
	if !got.Equal(time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected fallback slot %v", got)
	}
}

func TestEarliestSlotIgnoresNextSlotWhenSlotsFound(t *testing.T) {
	resp := decodeResponse(t, `{
		"availabilities": [{"date": "2024-03-01", "slots": ["2024-03-01T10:00:00Z"]}],
		"next_slot": "2024-02-01T08:00:00Z"
	}`)

	got, ok := EarliestSlot(resp, time.UTC, nil)
	if !ok || !got.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("next_slot must only be used when no slot parsed, got %v", got)
	}
}

func TestEarliestSlotSkipsMalformed(t *testing.T) {
	resp := decodeResponse(t, `{"availabilities": [
		{"date": "2024-01-01", "slots": ["garbage", {"start_date": "2023-01-01"}, 42, "2024-01-02T11:00:00Z"]},
		{"date": "2024-01-03", "slots": null}
	]}`)

	got, ok := EarliestSlot(resp, time.UTC, nil)
	if !ok || !got.Equal(time.Date(2024, 1, 2, 11, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected malformed entries to be skipped, got %v (%v)", got, ok)
	}
}

func TestEarliestSlotNone(t *testing.T) {
	cases := map[string]string{
		"empty":             `{"availabilities": []}`,
		"missing key":       `{"total": 0}`,
		"null next_slot":    `{"availabilities": [], "next_slot": null}`,
		"numeric next_slot": `{"availabilities": [], "next_slot": 17}`,
		"bad next_slot":     `{"availabilities": [], "next_slot": "soon"}`,
		"only bad slots":    `{"availabilities": [{"date": "2024-01-01", "slots": ["x", "y"]}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if got, ok := EarliestSlot(decodeResponse(t, body), time.UTC, nil); ok {
				t.Fatalf("expected no slot, got %v", got)
			}
		})
	}
}
