package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/johnsosoka/jscom-contact-services/internal/queue"
)

func newTestConsumer(source, dead *queue.MemoryQueue, fn Func) *Consumer {
	return &Consumer{
		Name:            "test",
		Source:          source,
		DeadLetter:      dead,
		Process:         fn,
		BatchSize:       10,
		FetchWait:       10 * time.Millisecond,
		ProcessTimeout:  time.Second,
		MaxReceiveCount: 2,
	}
}

// runFor runs the consumer until d elapses.
func runFor(t *testing.T, c *Consumer, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	<-done
}

func TestConsumer_AckRemovesMessage(t *testing.T) {
	source := queue.NewMemoryQueue(50 * time.Millisecond)
	dead := queue.NewMemoryQueue(time.Minute)
	_ = source.Publish(context.Background(), []byte("ok"))

	var processed int32
	c := newTestConsumer(source, dead, func(ctx context.Context, body []byte) Outcome {
		atomic.AddInt32(&processed, 1)
		return Ack
	})
	runFor(t, c, 200*time.Millisecond)

	if n := atomic.LoadInt32(&processed); n != 1 {
		t.Errorf("expected exactly 1 processing attempt, got %d", n)
	}
	if source.Len() != 0 {
		t.Errorf("acked message still on source queue")
	}
	if dead.Len() != 0 {
		t.Errorf("acked message must not be dead-lettered")
	}
}

// TestConsumer_RetryThenDeadLetter verifies the escape valve: a message that
// keeps failing is redelivered up to MaxReceiveCount times, then moved to the
// dead-letter queue instead of retrying forever.
func TestConsumer_RetryThenDeadLetter(t *testing.T) {
	source := queue.NewMemoryQueue(20 * time.Millisecond)
	dead := queue.NewMemoryQueue(time.Minute)
	_ = source.Publish(context.Background(), []byte("poison-ish"))

	var attempts int32
	c := newTestConsumer(source, dead, func(ctx context.Context, body []byte) Outcome {
		atomic.AddInt32(&attempts, 1)
		return Retry
	})
	runFor(t, c, 500*time.Millisecond)

	if n := atomic.LoadInt32(&attempts); n != 2 {
		t.Errorf("expected MaxReceiveCount=2 attempts, got %d", n)
	}
	if source.Len() != 0 {
		t.Errorf("exhausted message still on source queue")
	}
	if dead.Len() != 1 {
		t.Fatalf("expected 1 dead-lettered message, got %d", dead.Len())
	}
	if string(dead.Bodies()[0]) != "poison-ish" {
		t.Errorf("dead-letter body mismatch: %q", dead.Bodies()[0])
	}
}

// TestConsumer_DeadOutcomeSkipsRetries verifies an unprocessable message is
// dead-lettered on the first attempt.
func TestConsumer_DeadOutcomeSkipsRetries(t *testing.T) {
	source := queue.NewMemoryQueue(20 * time.Millisecond)
	dead := queue.NewMemoryQueue(time.Minute)
	_ = source.Publish(context.Background(), []byte("garbage"))

	var attempts int32
	c := newTestConsumer(source, dead, func(ctx context.Context, body []byte) Outcome {
		atomic.AddInt32(&attempts, 1)
		return Dead
	})
	runFor(t, c, 300*time.Millisecond)

	if n := atomic.LoadInt32(&attempts); n != 1 {
		t.Errorf("expected 1 attempt, got %d", n)
	}
	if dead.Len() != 1 {
		t.Errorf("expected 1 dead-lettered message, got %d", dead.Len())
	}
	if source.Len() != 0 {
		t.Errorf("dead message still on source queue")
	}
}

// TestConsumer_BatchIsIndependent verifies one failing message does not block
// the rest of the batch.
func TestConsumer_BatchIsIndependent(t *testing.T) {
	source := queue.NewMemoryQueue(time.Minute)
	dead := queue.NewMemoryQueue(time.Minute)
	_ = source.Publish(context.Background(), []byte("good"))
	_ = source.Publish(context.Background(), []byte("bad"))
	_ = source.Publish(context.Background(), []byte("good"))

	var acked int32
	c := newTestConsumer(source, dead, func(ctx context.Context, body []byte) Outcome {
		if string(body) == "bad" {
			return Retry
		}
		atomic.AddInt32(&acked, 1)
		return Ack
	})
	runFor(t, c, 200*time.Millisecond)

	if n := atomic.LoadInt32(&acked); n != 2 {
		t.Errorf("expected 2 acked messages, got %d", n)
	}
	// The failing message stays queued for redelivery.
	if source.Len() != 1 {
		t.Errorf("expected 1 message left on source queue, got %d", source.Len())
	}
}
