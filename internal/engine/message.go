package engine

import (
	"fmt"
	"html"
	"strings"

	"github.com/dtorcivia/slotwatch/internal/config"
	"github.com/dtorcivia/slotwatch/internal/util"
)

// Compose builds the HTML notification text for a decision.
func Compose(d *Decision, booking *config.BookingConfig, f *util.DisplayFormatter) string {
	if f == nil {
		f = util.NewDisplayFormatter("", "")
	}

	var lines []string

	if booking.AppointmentName != "" {
		lines = append(lines, "👨‍⚕️👩‍⚕️ "+html.EscapeString(booking.AppointmentName))
	}

	switch {
	case d.SlotInNearFuture:
		lines = append(lines, fmt.Sprintf("🔥 Appointment available in %d days! (%s)",
			d.DaysUntil, f.FormatAlert(d.EarliestSlot)))
		if booking.MoveURL != "" {
			lines = append(lines, fmt.Sprintf(`<a href="%s">🚚 Move existing booking</a>.`,
				html.EscapeString(booking.MoveURL)))
		}
	case d.Debug:
		if !d.HasSlot {
			lines = append(lines, "🔍 Debug: No appointments available")
		} else {
			lines = append(lines, fmt.Sprintf("🔍 Debug: Next appointment in %d days (%s)",
				d.DaysUntil, f.FormatAlert(d.EarliestSlot)))
		}
	}

	if d.HourlyDue && d.HasSlot {
		lines = append(lines, fmt.Sprintf("🐌 Next available: <i>%s</i>", f.FormatHeartbeat(d.EarliestSlot)))
	}

	label := booking.Label
	if label == "" {
		label = config.DefaultBookingLabel
	}
	lines = append(lines, fmt.Sprintf(`Book now on <a href="%s">%s</a>.`,
		html.EscapeString(booking.URL), html.EscapeString(label)))

	return strings.Join(lines, "\n")
}
