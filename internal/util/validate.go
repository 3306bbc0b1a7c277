// Package util provides input validation utilities.
package util

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validation errors
var (
	ErrEmptyField     = fmt.Errorf("field cannot be empty")
	ErrInvalidURL     = fmt.Errorf("invalid URL")
	ErrUnsupportedURL = fmt.Errorf("URL must be absolute http or https")
)

// ValidateHTTPURL checks that s is an absolute http(s) URL with a host.
func ValidateHTTPURL(s string) error {
	if s == "" {
		return ErrEmptyField
	}

	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrUnsupportedURL
	}

	return nil
}

// TruncateString truncates a string to max length, adding ellipsis if needed.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// RedactString replaces every occurrence of secret in s.
func RedactString(s, secret string) string {
	if secret == "" {
		return s
	}
	return strings.ReplaceAll(s, secret, "HIDDEN")
}

// RedactError returns err with every occurrence of secret in its message
// replaced. The wrapped chain is dropped only when a replacement happens.
func RedactError(err error, secret string) error {
	if err == nil || secret == "" {
		return err
	}
	msg := err.Error()
	if !strings.Contains(msg, secret) {
		return err
	}
	return errors.New(RedactString(msg, secret))
}
