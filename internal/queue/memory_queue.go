package queue

import (
	"context"
	"sync"
	"time"
)

// MemoryQueue is an in-process Queue with the same at-least-once contract as
// the JetStream implementation: fetched messages become invisible for the
// visibility timeout and are redelivered if not acknowledged. It backs the
// worker, filter, and dispatcher tests without a NATS server.
type MemoryQueue struct {
	visibility time.Duration

	mu     sync.Mutex
	nextID int
	msgs   map[int]*memoryMessage
}

type memoryMessage struct {
	body         []byte
	receiveCount int
	visibleAt    time.Time
}

// NewMemoryQueue creates an empty queue with the given visibility timeout.
func NewMemoryQueue(visibility time.Duration) *MemoryQueue {
	return &MemoryQueue{
		visibility: visibility,
		msgs:       make(map[int]*memoryMessage),
	}
}

// Publish appends a message to the queue.
func (q *MemoryQueue) Publish(_ context.Context, body []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.msgs[q.nextID] = &memoryMessage{
		body:      append([]byte(nil), body...),
		visibleAt: time.Now(),
	}
	return nil
}

// Fetch returns up to max visible deliveries, polling until wait elapses if
// none are immediately available.
func (q *MemoryQueue) Fetch(ctx context.Context, max int, wait time.Duration) ([]*Delivery, error) {
	deadline := time.Now().Add(wait)
	for {
		if deliveries := q.take(max); len(deliveries) > 0 {
			return deliveries, nil
		}
		if time.Now().After(deadline) {
			return nil, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func (q *MemoryQueue) take(max int) []*Delivery {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := time.Now()
	var deliveries []*Delivery
	for id, m := range q.msgs {
		if len(deliveries) >= max {
			break
		}
		if m.visibleAt.After(now) {
			continue
		}
		m.receiveCount++
		m.visibleAt = now.Add(q.visibility)

		msgID := id
		deliveries = append(deliveries, &Delivery{
			Body:         m.body,
			ReceiveCount: m.receiveCount,
			ack: func() error {
				q.mu.Lock()
				defer q.mu.Unlock()
				delete(q.msgs, msgID)
				return nil
			},
		})
	}
	return deliveries
}

// Len reports the number of messages still in the queue, visible or not.
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.msgs)
}

// Bodies returns a copy of every message body still in the queue. Test
// helper for asserting what was published.
func (q *MemoryQueue) Bodies() [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	bodies := make([][]byte, 0, len(q.msgs))
	for _, m := range q.msgs {
		bodies = append(bodies, append([]byte(nil), m.body...))
	}
	return bodies
}

var _ Queue = (*MemoryQueue)(nil)
