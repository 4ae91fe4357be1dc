package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/johnsosoka/jscom-contact-services/internal/queue"
)

// Outcome is the explicit result of one message-processing attempt. The
// consumer loop is the only place an outcome is translated into queue
// mechanics (acknowledge vs leave for redelivery vs dead-letter).
type Outcome int

const (
	// Ack: the message was fully processed and must not be redelivered.
	Ack Outcome = iota
	// Retry: processing failed transiently; leave the message for
	// redelivery after the visibility timeout.
	Retry
	// Dead: the message can never succeed (e.g. undecodable body); route
	// it to the dead-letter queue immediately.
	Dead
)

// Func processes one message body and reports what should happen to it.
type Func func(ctx context.Context, body []byte) Outcome

// Consumer drains a queue in bounded batches, applies fn to each delivery
// under a per-message timeout, and enforces the max-receive-count escape
// valve: messages delivered more than MaxReceiveCount times are published to
// the dead-letter queue and acknowledged instead of retried forever.
type Consumer struct {
	Name            string
	Source          queue.Queue
	DeadLetter      queue.Queue
	Process         Func
	BatchSize       int
	FetchWait       time.Duration
	ProcessTimeout  time.Duration
	MaxReceiveCount int
}

// Run consumes until ctx is cancelled. Deliveries within a batch are
// independent: one failing message never blocks the others.
func (c *Consumer) Run(ctx context.Context) {
	slog.Info("consumer started", "consumer", c.Name)
	for {
		if ctx.Err() != nil {
			slog.Info("consumer stopped", "consumer", c.Name)
			return
		}

		deliveries, err := c.Source.Fetch(ctx, c.BatchSize, c.FetchWait)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			slog.Error("fetch failed", "consumer", c.Name, "error", err)
			time.Sleep(time.Second)
			continue
		}

		for _, d := range deliveries {
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d *queue.Delivery) {
	if d.ReceiveCount > c.MaxReceiveCount {
		c.deadLetter(ctx, d, "receive count exhausted")
		return
	}

	procCtx, cancel := context.WithTimeout(ctx, c.ProcessTimeout)
	outcome := c.Process(procCtx, d.Body)
	cancel()

	switch outcome {
	case Ack:
		if err := d.Ack(); err != nil {
			// The message will be redelivered; processing must be
			// idempotent, so this only costs a duplicate attempt.
			slog.Warn("ack failed", "consumer", c.Name, "error", err)
		}
	case Dead:
		c.deadLetter(ctx, d, "unprocessable message")
	case Retry:
		slog.Warn("leaving message for redelivery",
			"consumer", c.Name,
			"receive_count", d.ReceiveCount,
			"max_receive_count", c.MaxReceiveCount,
		)
	}
}

func (c *Consumer) deadLetter(ctx context.Context, d *queue.Delivery, reason string) {
	if err := c.DeadLetter.Publish(ctx, d.Body); err != nil {
		// Keep the message on the source queue rather than lose it.
		slog.Error("dead-letter publish failed", "consumer", c.Name, "error", err)
		return
	}
	slog.Error("message dead-lettered",
		"consumer", c.Name,
		"reason", reason,
		"receive_count", d.ReceiveCount,
	)
	if err := d.Ack(); err != nil {
		slog.Warn("ack after dead-letter failed", "consumer", c.Name, "error", err)
	}
}
