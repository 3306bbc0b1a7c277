// Package config provides default values for configuration.
package config

import "time"

// Telegram defaults
const (
	DefaultTelegramAPIBase = "https://api.telegram.org"
)

// Booking defaults
const (
	DefaultBookingURL   = "https://www.doctolib.de/"
	DefaultBookingLabel = "doctolib.de"
)

// Availability defaults
const (
	DefaultHTTPTimeout = 30 * time.Second
	DefaultUserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 13_4) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"
)

// Schedule defaults
const (
	DefaultUpcomingDays = 15
	// DefaultMaxAllowedDays caps UpcomingDays. Raising it widens the query
	// the availability endpoint has to answer.
	DefaultMaxAllowedDays = 30
)

// Logging defaults
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// DefaultConfigFile is read from the working directory when
// SLOTWATCH_CONFIG_FILE is not set.
const DefaultConfigFile = "slotwatch.yaml"
