// Package delivery relays contact form messages to an email-delivery
// service. Every backend satisfies Sender; callers only see delivered
// (nil) or an error wrapping ErrDeliveryFailed.
package delivery

import (
	"context"
	"errors"
	"fmt"
)

// ErrDeliveryFailed is wrapped by every error a Sender returns.
var ErrDeliveryFailed = errors.New("delivery failed")

// ErrNotConfigured is returned when a backend is missing credentials.
var ErrNotConfigured = errors.New("delivery backend not configured")

// Message is the payload of one contact form submission.
type Message struct {
	Name    string
	Email   string
	Message string
}

// Sender delivers a Message. Send returns nil once the collaborator has
// accepted the message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

func failed(reason error) error {
	return fmt.Errorf("%w: %w", ErrDeliveryFailed, reason)
}
