package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type fileDuration time.Duration

func (d *fileDuration) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!int" {
			var seconds int64
			if err := value.Decode(&seconds); err != nil {
				return err
			}
			*d = fileDuration(time.Duration(seconds) * time.Second)
			return nil
		}
		var raw string
		if err := value.Decode(&raw); err != nil {
			return err
		}
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", raw, err)
		}
		*d = fileDuration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration type")
	}
}

type ConfigFile struct {
	Telegram     *TelegramConfigFile     `yaml:"telegram"`
	Booking      *BookingConfigFile      `yaml:"booking"`
	Availability *AvailabilityConfigFile `yaml:"availability"`
	Schedule     *ScheduleConfigFile     `yaml:"schedule"`
	Logging      *LoggingConfigFile      `yaml:"logging"`
	Debug        *bool                   `yaml:"debug"`
}

type TelegramConfigFile struct {
	BotToken *string       `yaml:"bot_token"`
	ChatID   *string       `yaml:"chat_id"`
	APIBase  *string       `yaml:"api_base"`
	Timeout  *fileDuration `yaml:"timeout"`
}

type BookingConfigFile struct {
	URL             *string `yaml:"url"`
	Label           *string `yaml:"label"`
	MoveURL         *string `yaml:"move_url"`
	AppointmentName *string `yaml:"appointment_name"`
}

type AvailabilityConfigFile struct {
	URL         *string       `yaml:"url"`
	UserAgent   *string       `yaml:"user_agent"`
	HTTPTimeout *fileDuration `yaml:"http_timeout"`
}

type ScheduleConfigFile struct {
	UpcomingDays    *int    `yaml:"upcoming_days"`
	MaxAllowedDays  *int    `yaml:"max_allowed_days"`
	NotifyHourly    *bool   `yaml:"notify_hourly"`
	DisplayTimezone *string `yaml:"display_timezone"`
}

type LoggingConfigFile struct {
	Level  *string `yaml:"level"`
	Format *string `yaml:"format"`
}

func loadConfigFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file ConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyConfigFile(cfg, &file)
	return nil
}

func applyConfigFile(cfg *Config, file *ConfigFile) {
	if cfg == nil || file == nil {
		return
	}

	if t := file.Telegram; t != nil {
		setString(&cfg.Telegram.BotToken, t.BotToken)
		setString(&cfg.Telegram.ChatID, t.ChatID)
		setString(&cfg.Telegram.APIBase, t.APIBase)
		if t.Timeout != nil {
			cfg.Telegram.Timeout = time.Duration(*t.Timeout)
		}
	}

	if b := file.Booking; b != nil {
		setString(&cfg.Booking.URL, b.URL)
		setString(&cfg.Booking.Label, b.Label)
		setString(&cfg.Booking.MoveURL, b.MoveURL)
		setString(&cfg.Booking.AppointmentName, b.AppointmentName)
	}

	if a := file.Availability; a != nil {
		setString(&cfg.Availability.URL, a.URL)
		setString(&cfg.Availability.UserAgent, a.UserAgent)
		if a.HTTPTimeout != nil {
			cfg.Availability.HTTPTimeout = time.Duration(*a.HTTPTimeout)
		}
	}

	if s := file.Schedule; s != nil {
		if s.UpcomingDays != nil {
			cfg.Schedule.UpcomingDays = *s.UpcomingDays
		}
		if s.MaxAllowedDays != nil {
			cfg.Schedule.MaxAllowedDays = *s.MaxAllowedDays
		}
		if s.NotifyHourly != nil {
			cfg.Schedule.NotifyHourly = *s.NotifyHourly
		}
		setString(&cfg.Schedule.DisplayTimezone, s.DisplayTimezone)
	}

	if l := file.Logging; l != nil {
		setString(&cfg.Logging.Level, l.Level)
		setString(&cfg.Logging.Format, l.Format)
	}

	if file.Debug != nil {
		cfg.Debug = *file.Debug
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// GetConfigFilePath returns the path to the config file based on environment variables.
func GetConfigFilePath() string {
	return getEnv("SLOTWATCH_CONFIG_FILE", DefaultConfigFile)
}
