// Package availability fetches appointment availability and picks the earliest slot.
package availability

import "encoding/json"

// Response is the availability payload. Every field is untrusted input:
// slots and next_slot are kept raw so one bad value cannot fail the decode.
type Response struct {
	Total          int             `json:"total"`
	Availabilities []Day           `json:"availabilities"`
	NextSlot       json.RawMessage `json:"next_slot,omitempty"`
}

// Day lists the slots offered on one date.
type Day struct {
	Date  string            `json:"date"`
	Slots []json.RawMessage `json:"slots"`
}

// NextSlotString returns next_slot when it is present and a JSON string.
func (r *Response) NextSlotString() (string, bool) {
	return rawString(r.NextSlot)
}

// SlotCount returns the number of raw slot entries across all days.
func (r *Response) SlotCount() int {
	n := 0
	for _, day := range r.Availabilities {
		n += len(day.Slots)
	}
	return n
}

func rawString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}
