// Package config handles configuration loading from environment variables and optional YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dtorcivia/slotwatch/internal/util"
)

// ErrMissingRequired is returned by Validate when a required value is empty.
var ErrMissingRequired = errors.New("missing required configuration")

// Names of the required values, in the order they are reported.
const (
	FieldTelegramBotToken = "TELEGRAM_BOT_TOKEN"
	FieldTelegramChatID   = "TELEGRAM_CHAT_ID"
	FieldBookingURL       = "BOOKING_URL"
	FieldAvailabilityURL  = "AVAILABILITIES_URL"
)

// Config holds all application configuration.
type Config struct {
	Telegram     TelegramConfig
	Booking      BookingConfig
	Availability AvailabilityConfig
	Schedule     ScheduleConfig
	Logging      LoggingConfig
	Debug        bool

	// UpcomingDaysClamped records that Schedule.UpcomingDays was lowered to
	// Schedule.MaxAllowedDays during Load.
	UpcomingDaysClamped bool

	// RequestedUpcomingDays is the lookahead before clamping.
	RequestedUpcomingDays int
}

// TelegramConfig holds the messaging transport settings.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	APIBase  string
	Timeout  time.Duration
}

// BookingConfig holds the links and labels shown in notifications.
type BookingConfig struct {
	URL             string
	Label           string
	MoveURL         string
	AppointmentName string
}

// AvailabilityConfig holds the availability endpoint settings.
type AvailabilityConfig struct {
	URL         string
	UserAgent   string
	HTTPTimeout time.Duration
}

// ScheduleConfig holds the notification policy inputs.
type ScheduleConfig struct {
	UpcomingDays    int
	MaxAllowedDays  int
	NotifyHourly    bool
	DisplayTimezone string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string
	Format string
}

// Default returns a configuration populated with built-in defaults only.
func Default() *Config {
	return &Config{
		Telegram: TelegramConfig{
			APIBase: DefaultTelegramAPIBase,
			Timeout: DefaultHTTPTimeout,
		},
		Booking: BookingConfig{
			URL:   DefaultBookingURL,
			Label: DefaultBookingLabel,
		},
		Availability: AvailabilityConfig{
			UserAgent:   DefaultUserAgent,
			HTTPTimeout: DefaultHTTPTimeout,
		},
		Schedule: ScheduleConfig{
			UpcomingDays:   DefaultUpcomingDays,
			MaxAllowedDays: DefaultMaxAllowedDays,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// environment variables, in that order. Missing required values are not an
// error here; callers decide what to do with MissingFields.
func Load() (*Config, error) {
	cfg := Default()

	if err := loadConfigFile(cfg, GetConfigFilePath()); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	cfg.clampUpcomingDays()

	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Telegram.BotToken = getEnv("TELEGRAM_BOT_TOKEN", cfg.Telegram.BotToken)
	cfg.Telegram.ChatID = getEnv("TELEGRAM_CHAT_ID", cfg.Telegram.ChatID)
	cfg.Telegram.APIBase = getEnv("TELEGRAM_API_BASE", cfg.Telegram.APIBase)
	cfg.Telegram.Timeout = getEnvDuration("TELEGRAM_TIMEOUT", cfg.Telegram.Timeout)

	cfg.Booking.URL = getEnv("BOOKING_URL", cfg.Booking.URL)
	cfg.Booking.Label = getEnv("BOOKING_LABEL", cfg.Booking.Label)
	cfg.Booking.MoveURL = getEnv("MOVE_BOOKING_URL", cfg.Booking.MoveURL)
	cfg.Booking.AppointmentName = getEnv("APPOINTMENT_NAME", cfg.Booking.AppointmentName)

	cfg.Availability.URL = getEnv("AVAILABILITIES_URL", cfg.Availability.URL)
	cfg.Availability.UserAgent = getEnv("USER_AGENT", cfg.Availability.UserAgent)
	cfg.Availability.HTTPTimeout = getEnvDuration("HTTP_TIMEOUT", cfg.Availability.HTTPTimeout)

	cfg.Schedule.UpcomingDays = getEnvInt("UPCOMING_DAYS", cfg.Schedule.UpcomingDays)
	cfg.Schedule.MaxAllowedDays = getEnvInt("MAX_ALLOWED_DAYS", cfg.Schedule.MaxAllowedDays)
	cfg.Schedule.NotifyHourly = getEnvBool("NOTIFY_HOURLY", cfg.Schedule.NotifyHourly)
	cfg.Schedule.DisplayTimezone = getEnv("DISPLAY_TIMEZONE", cfg.Schedule.DisplayTimezone)

	cfg.Debug = getEnvBool("DEBUG_MODE", cfg.Debug)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
}

func (c *Config) clampUpcomingDays() {
	c.RequestedUpcomingDays = c.Schedule.UpcomingDays
	if c.Schedule.UpcomingDays > c.Schedule.MaxAllowedDays {
		c.Schedule.UpcomingDays = c.Schedule.MaxAllowedDays
		c.UpcomingDaysClamped = true
	}
}

// MissingFields returns the names of required values that are empty.
func (c *Config) MissingFields() []string {
	var missing []string
	if c.Telegram.BotToken == "" {
		missing = append(missing, FieldTelegramBotToken)
	}
	if c.Telegram.ChatID == "" {
		missing = append(missing, FieldTelegramChatID)
	}
	if c.Booking.URL == "" {
		missing = append(missing, FieldBookingURL)
	}
	if c.Availability.URL == "" {
		missing = append(missing, FieldAvailabilityURL)
	}
	return missing
}

// Validate checks that required configuration fields are set.
func (c *Config) Validate() error {
	if missing := c.MissingFields(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingRequired, strings.Join(missing, ", "))
	}
	return nil
}

// Warnings reports suspicious but non-fatal values.
func (c *Config) Warnings() []string {
	var warnings []string
	urls := []struct {
		name, value string
	}{
		{FieldBookingURL, c.Booking.URL},
		{FieldAvailabilityURL, c.Availability.URL},
		{"MOVE_BOOKING_URL", c.Booking.MoveURL},
	}
	for _, u := range urls {
		if u.value == "" {
			continue
		}
		if err := util.ValidateHTTPURL(u.value); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", u.name, err))
		}
	}
	if c.Schedule.UpcomingDays < 0 {
		warnings = append(warnings, fmt.Sprintf("UPCOMING_DAYS is negative (%d)", c.Schedule.UpcomingDays))
	}
	return warnings
}

// Location returns the zone used for "today" and for naive slot times.
func (c *Config) Location() (*time.Location, error) {
	if c.Schedule.DisplayTimezone == "" {
		return time.Local, nil
	}
	return util.LoadLocation(c.Schedule.DisplayTimezone)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		lower := strings.ToLower(strings.TrimSpace(value))
		return lower == "true" || lower == "1" || lower == "yes"
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil {
			return duration
		}
	}
	return defaultValue
}
