package filter

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
	"github.com/johnsosoka/jscom-contact-services/internal/queue"
	"github.com/johnsosoka/jscom-contact-services/internal/repository"
	"github.com/johnsosoka/jscom-contact-services/internal/worker"
)

// Filter consumes the submission queue: it looks the source IP up in the
// block list, persists the submission, and forwards unblocked submissions to
// the notify queue.
//
// The order persist-then-notify is the correctness mechanism: a redelivered
// message repeats the upsert (a no-op overwrite keyed by id) before the
// notify publish is re-attempted, so a crash between the two steps can only
// produce a duplicate notification, never a lost or duplicated record.
type Filter struct {
	messages  repository.MessageRepository
	blocklist repository.BlockListRepository
	notify    queue.Queue
}

// NewFilter creates a Filter over the given stores and notify queue.
func NewFilter(messages repository.MessageRepository, blocklist repository.BlockListRepository, notify queue.Queue) *Filter {
	return &Filter{messages: messages, blocklist: blocklist, notify: notify}
}

// Process handles one submission-queue message body. Any transient failure
// leaves the source message unacknowledged so the queue redelivers it.
func (f *Filter) Process(ctx context.Context, body []byte) worker.Outcome {
	var sub model.Submission
	if err := json.Unmarshal(body, &sub); err != nil {
		slog.Error("undecodable submission message", "error", err)
		return worker.Dead
	}
	if sub.ID == "" || sub.ContactMessage == "" {
		slog.Error("submission message missing required fields", "submission_id", sub.ID)
		return worker.Dead
	}

	blocked, err := f.blocklist.Exists(ctx, sub.IPAddress)
	if err != nil {
		slog.Error("block list lookup failed", "submission_id", sub.ID, "error", err)
		return worker.Retry
	}
	// is_blocked reflects the block list as observed now; it is never
	// updated retroactively.
	sub.IsBlocked = blocked

	if err := f.messages.Upsert(ctx, &sub); err != nil {
		slog.Error("submission persist failed", "submission_id", sub.ID, "error", err)
		return worker.Retry
	}

	if blocked {
		slog.Info("submission blocked",
			"submission_id", sub.ID,
			"ip_address", sub.IPAddress,
		)
		return worker.Ack
	}

	forwarded, err := json.Marshal(&sub)
	if err != nil {
		slog.Error("encode forwarded submission failed", "submission_id", sub.ID, "error", err)
		return worker.Dead
	}
	if err := f.notify.Publish(ctx, forwarded); err != nil {
		// The record is already persisted; retrying repeats the idempotent
		// upsert and this publish.
		slog.Error("notify enqueue failed", "submission_id", sub.ID, "error", err)
		return worker.Retry
	}

	slog.Info("submission routed to notify queue", "submission_id", sub.ID)
	return worker.Ack
}
