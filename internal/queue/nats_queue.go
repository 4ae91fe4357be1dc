package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// NatsQueue is a JetStream-backed Queue. Each queue is one stream with a
// single subject and work-queue retention, so an acknowledged message is
// removed and an unacknowledged one is redelivered after the consumer's
// ack-wait (the visibility timeout).
type NatsQueue struct {
	js      nats.JetStreamContext
	subject string
	sub     *nats.Subscription
}

// Connect dials the NATS server and returns a JetStream context.
func Connect(url string) (*nats.Conn, nats.JetStreamContext, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, nil, err
	}
	js, err := nc.JetStream()
	if err != nil {
		nc.Close()
		return nil, nil, err
	}
	return nc, js, nil
}

// NewNatsQueue ensures the stream exists and returns a publish-only queue.
// Call Subscribe before Fetch to attach a durable pull consumer.
func NewNatsQueue(js nats.JetStreamContext, stream, subject string) (*NatsQueue, error) {
	_, err := js.AddStream(&nats.StreamConfig{
		Name:      stream,
		Subjects:  []string{subject},
		Retention: nats.WorkQueuePolicy,
		Storage:   nats.FileStorage,
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return nil, fmt.Errorf("ensure stream %s: %w", stream, err)
	}
	return &NatsQueue{js: js, subject: subject}, nil
}

// Subscribe attaches a durable pull consumer. ackWait is the visibility
// timeout: a delivery not acknowledged within it becomes eligible for
// redelivery. MaxDeliver is left unlimited; the consumer loop owns the
// dead-letter escape valve so exhausted messages are recorded, not dropped.
func (q *NatsQueue) Subscribe(durable string, ackWait time.Duration) error {
	sub, err := q.js.PullSubscribe(q.subject, durable,
		nats.AckExplicit(),
		nats.AckWait(ackWait),
		nats.MaxDeliver(-1),
	)
	if err != nil {
		return fmt.Errorf("pull subscribe %s: %w", q.subject, err)
	}
	q.sub = sub
	return nil
}

// Publish appends a message to the stream.
func (q *NatsQueue) Publish(ctx context.Context, body []byte) error {
	_, err := q.js.Publish(q.subject, body, nats.Context(ctx))
	return err
}

// Fetch receives up to max deliveries, waiting at most wait for the first.
// An empty stream yields an empty slice, not an error.
func (q *NatsQueue) Fetch(ctx context.Context, max int, wait time.Duration) ([]*Delivery, error) {
	if q.sub == nil {
		return nil, errors.New("queue is publish-only: Subscribe was not called")
	}
	msgs, err := q.sub.Fetch(max, nats.MaxWait(wait))
	if err != nil {
		if errors.Is(err, nats.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
			return nil, nil
		}
		return nil, err
	}

	deliveries := make([]*Delivery, 0, len(msgs))
	for _, msg := range msgs {
		receiveCount := 1
		if meta, err := msg.Metadata(); err == nil {
			receiveCount = int(meta.NumDelivered)
		}
		m := msg
		deliveries = append(deliveries, &Delivery{
			Body:         m.Data,
			ReceiveCount: receiveCount,
			ack:          func() error { return m.Ack() },
		})
	}
	return deliveries, nil
}

var _ Queue = (*NatsQueue)(nil)
