package queue

import (
	"context"
	"time"
)

// Delivery is one received message together with its redelivery metadata.
// A delivery that is never acknowledged becomes visible again after the
// queue's visibility timeout and is redelivered (at-least-once semantics).
type Delivery struct {
	Body []byte
	// ReceiveCount is the number of times this message has been delivered,
	// including the current delivery.
	ReceiveCount int

	ack func() error
}

// Ack acknowledges the delivery, removing the message from the queue.
func (d *Delivery) Ack() error {
	return d.ack()
}

// Queue is an at-least-once delivery queue connecting two pipeline stages.
// Implementations must support batch receive, explicit per-message
// acknowledgment, and redelivery of unacknowledged messages after a
// visibility timeout.
type Queue interface {
	// Publish appends a message to the queue.
	Publish(ctx context.Context, body []byte) error

	// Fetch returns up to max deliveries, waiting at most wait for the
	// first one. An empty slice with a nil error means the queue had no
	// visible messages within the wait window.
	Fetch(ctx context.Context, max int, wait time.Duration) ([]*Delivery, error)
}
