package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
	"github.com/johnsosoka/jscom-contact-services/internal/worker"
)

// Dispatcher consumes the notify queue and fans a submission out to every
// registered channel adapter. Adapter calls are independent: one channel's
// failure never prevents the others from being invoked in the same attempt.
//
// Ack policy: the message is acknowledged only when no adapter reports a
// retryable failure. On redelivery, adapters that already succeeded are
// invoked again; external channels are expected to tolerate the occasional
// duplicate notice.
type Dispatcher struct {
	adapters []Adapter
}

// NewDispatcher creates a Dispatcher over the given adapter registry.
func NewDispatcher(adapters []Adapter) *Dispatcher {
	return &Dispatcher{adapters: adapters}
}

// Process handles one notify-queue message body.
func (d *Dispatcher) Process(ctx context.Context, body []byte) worker.Outcome {
	var sub model.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		slog.Error("undecodable notify message", "error", err)
		return worker.Dead
	}
	if sub.ContactMessage == "" {
		slog.Error("notify message missing contact_message", "submission_id", sub.ID)
		return worker.Dead
	}

	retryable := false
	for _, adapter := range d.adapters {
		status, err := d.dispatch(ctx, adapter, &sub)
		switch status {
		case Success:
			slog.Info("notification sent",
				"channel", adapter.Name(),
				"submission_id", sub.ID,
			)
		case RetryableFailure:
			retryable = true
			slog.Warn("channel send failed, will retry",
				"channel", adapter.Name(),
				"submission_id", sub.ID,
				"error", err,
			)
		case FatalFailure:
			slog.Error("channel send failed permanently",
				"channel", adapter.Name(),
				"submission_id", sub.ID,
				"error", err,
			)
		}
	}

	if retryable {
		return worker.Retry
	}
	return worker.Ack
}

func (d *Dispatcher) dispatch(ctx context.Context, adapter Adapter, sub *model.Submission) (Status, error) {
	payload, err := adapter.Render(sub)
	if err != nil {
		// A payload that cannot render will not render on retry either.
		return FatalFailure, err
	}
	return adapter.Send(ctx, payload)
}
