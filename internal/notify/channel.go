package notify

import (
	"context"

	"github.com/johnsosoka/jscom-contact-services/internal/config"
	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// Status classifies the outcome of one channel send.
type Status int

const (
	// Success: the notification was delivered.
	Success Status = iota
	// RetryableFailure: the channel was temporarily unavailable; the
	// dispatcher leaves the message for redelivery.
	RetryableFailure
	// FatalFailure: the send can never succeed for this channel (bad
	// configuration, rejected payload); logged, does not block ack.
	FatalFailure
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case RetryableFailure:
		return "retryable_failure"
	case FatalFailure:
		return "fatal_failure"
	default:
		return "unknown"
	}
}

// Payload is a rendered per-channel notification. Email adapters consume
// Subject and HTML; text-based adapters consume Text.
type Payload struct {
	Subject string
	HTML    string
	Text    string
}

// Adapter is a pluggable notification channel. Adapters are constructed only
// when enabled by configuration; a disabled channel is never registered,
// invoked, or logged as failed.
type Adapter interface {
	Name() string
	Render(sub *model.Submission) (Payload, error)
	Send(ctx context.Context, p Payload) (Status, error)
}

// NewRegistry resolves the channel adapter set from configuration, once at
// startup. The returned slice contains only enabled adapters.
func NewRegistry(cfg config.Config) []Adapter {
	var adapters []Adapter
	if cfg.EmailEnabled {
		adapters = append(adapters, NewEmailAdapter(cfg))
	}
	if cfg.DiscordEnabled && cfg.DiscordWebhookURL != "" {
		adapters = append(adapters, NewDiscordAdapter(cfg.DiscordWebhookURL))
	}
	return adapters
}
