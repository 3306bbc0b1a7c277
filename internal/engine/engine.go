// Package engine runs one availability check: it normalizes the query,
// fetches availability, applies the notification policy and sends the message.
package engine

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dtorcivia/slotwatch/internal/availability"
	"github.com/dtorcivia/slotwatch/internal/config"
	"github.com/dtorcivia/slotwatch/internal/notifications"
	"github.com/dtorcivia/slotwatch/internal/util"
)

// Outcome names how a run ended.
type Outcome string

// Run outcomes. Only OutcomeNotified results in a message.
const (
	OutcomeNotified         Outcome = "notified"
	OutcomeConfigIncomplete Outcome = "config_incomplete"
	OutcomeFetchFailed      Outcome = "fetch_failed"
	OutcomeNothingToReport  Outcome = "nothing_to_report"
	OutcomeSendFailed       Outcome = "send_failed"
	OutcomeFailed           Outcome = "failed"
)

// AvailabilityFetcher retrieves the availability payload.
type AvailabilityFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*availability.Response, error)
}

// Notifier delivers a composed message.
type Notifier interface {
	Send(ctx context.Context, msg *notifications.Message) (string, error)
}

// Result describes a finished run.
type Result struct {
	RunID     string
	Outcome   Outcome
	URL       string
	Decision  *Decision
	Message   string
	MessageID string
	Err       error
}

// Engine orchestrates a single check.
type Engine struct {
	config    *config.Config
	fetcher   AvailabilityFetcher
	notifier  Notifier
	formatter *util.DisplayFormatter
	now       func() time.Time
	logger    *util.Logger
}

// NewEngine creates a new engine instance.
func NewEngine(cfg *config.Config, fetcher AvailabilityFetcher, notifier Notifier, logger *util.Logger) *Engine {
	if logger == nil {
		logger = util.GetDefaultLogger()
	}
	return &Engine{
		config:    cfg,
		fetcher:   fetcher,
		notifier:  notifier,
		formatter: util.NewDisplayFormatter("", ""),
		now:       time.Now,
		logger:    logger,
	}
}

// SetClock replaces the time source.
func (e *Engine) SetClock(now func() time.Time) {
	e.now = now
}

// Run performs one check. It never returns an error: every failure is
// reported through the Result outcome, and panics are recovered.
func (e *Engine) Run(ctx context.Context) (res *Result) {
	runID := uuid.New().String()
	logger := e.logger.With("run_id", runID)

	defer func() {
		if r := recover(); r != nil {
			logger.Debug("Panic recovered",
				"error", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			res = &Result{RunID: runID, Outcome: OutcomeFailed, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	res = &Result{RunID: runID}
	finish := func(outcome Outcome, err error) *Result {
		res.Outcome = outcome
		res.Err = err
		logger.Debug("Run finished", "outcome", string(outcome), "error", err)
		return res
	}

	e.logConfig(logger)
	if err := e.config.Validate(); err != nil {
		logger.Debug("Missing required configuration, exiting", "missing", strings.Join(e.config.MissingFields(), ", "))
		return finish(OutcomeConfigIncomplete, err)
	}

	loc, err := e.config.Location()
	if err != nil {
		logger.Debug("Falling back to local time zone", "error", err)
		loc = time.Local
	}
	now := e.now().In(loc)

	norm, err := availability.NormalizeURL(e.config.Availability.URL, now, e.config.Schedule.UpcomingDays)
	if err != nil {
		return finish(OutcomeFetchFailed, err)
	}
	e.logNormalized(logger, norm)
	res.URL = norm.URL

	resp, err := e.fetcher.Fetch(ctx, norm.URL)
	if err != nil {
		logger.Debug("Error fetching availabilities", "error", err)
		return finish(OutcomeFetchFailed, err)
	}
	logger.Debug("Availability payload", "total", resp.Total, "days", len(resp.Availabilities))

	slot, found := availability.EarliestSlot(resp, loc, logger)
	d := Decide(slot, found, now, e.config.Schedule.UpcomingDays, e.config.Schedule.NotifyHourly, e.config.Debug)
	res.Decision = d
	e.logDecision(logger, d, resp.Total)

	if !d.ShouldNotify() {
		logger.Debug("No notification needed", "reason", d.SkipReason())
		return finish(OutcomeNothingToReport, nil)
	}

	res.Message = Compose(d, &e.config.Booking, e.formatter)
	logger.Debug("Final message", "text", res.Message)

	id, err := e.notifier.Send(ctx, notifications.NewHTMLMessage(res.Message))
	if err != nil {
		logger.Debug("Error sending notification", "error", err)
		return finish(OutcomeSendFailed, err)
	}
	res.MessageID = id
	logger.Debug("Message sent successfully", "message_id", id)

	return finish(OutcomeNotified, nil)
}

func (e *Engine) logConfig(logger *util.Logger) {
	if !logger.DebugEnabled() {
		return
	}

	state := func(v string) string {
		if v == "" {
			return "MISSING"
		}
		return "SET"
	}
	cfg := e.config
	logger.Debug("Configuration",
		config.FieldTelegramBotToken, state(cfg.Telegram.BotToken),
		config.FieldTelegramChatID, state(cfg.Telegram.ChatID),
		config.FieldBookingURL, state(cfg.Booking.URL),
		config.FieldAvailabilityURL, state(cfg.Availability.URL),
		"appointment_name", cfg.Booking.AppointmentName,
		"move_booking_url", state(cfg.Booking.MoveURL),
		"upcoming_days", cfg.Schedule.UpcomingDays,
		"notify_hourly", cfg.Schedule.NotifyHourly,
	)
	if cfg.UpcomingDaysClamped {
		logger.Debug("Lookahead clamped",
			"requested", cfg.RequestedUpcomingDays,
			"max_allowed_days", cfg.Schedule.MaxAllowedDays,
		)
	}
	for _, w := range cfg.Warnings() {
		logger.Debug("Configuration warning", "warning", w)
	}
}

func (e *Engine) logNormalized(logger *util.Logger, norm *availability.Normalized) {
	if !logger.DebugEnabled() {
		return
	}

	logger.Debug("Original URL parameters", "params", norm.Original)
	if norm.StartDateErr != nil {
		logger.Debug("Invalid start_date, using today", "error", norm.StartDateErr)
	}
	for _, c := range norm.Changes {
		logger.Debug("Updated URL parameter", "key", c.Key, "from", c.From, "to", c.To)
	}
	logger.Debug("Final URL parameters", "params", norm.Params, "url", norm.URL)
}

func (e *Engine) logDecision(logger *util.Logger, d *Decision, total int) {
	if !logger.DebugEnabled() {
		return
	}

	if d.HasSlot {
		logger.Debug("Slot analysis",
			"earliest_slot", d.EarliestSlot.Format(time.DateTime),
			"days_until", d.DaysUntil,
		)
	} else {
		logger.Debug("No valid slots found")
	}
	logger.Debug("Notification decision",
		"total", total,
		"upcoming_days", d.UpcomingDays,
		"slot_in_near_future", d.SlotInNearFuture,
		"hourly_due", d.HourlyDue,
		"debug", d.Debug,
	)
}
