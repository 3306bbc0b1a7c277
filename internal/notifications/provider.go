// Package notifications provides notification delivery.
package notifications

import (
	"context"
)

// Provider defines the interface for notification providers.
type Provider interface {
	// Name returns the provider name (e.g., "telegram").
	Name() string

	// Enabled returns whether the provider has the credentials it needs.
	Enabled() bool

	// Send delivers a message and returns the provider's message ID.
	Send(ctx context.Context, msg *Message) (messageID string, err error)

	// SendTest sends a test notification.
	SendTest(ctx context.Context) error
}
