package repository

import (
	"context"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// MessageRepository is the persistence interface for submissions (the
// message store). Upsert is keyed by submission id and idempotent: the
// filter stage may re-process a redelivered message and repeat the write
// with identical content, never producing a duplicate record.
type MessageRepository interface {
	Upsert(ctx context.Context, sub *model.Submission) error
	Get(ctx context.Context, id string) (*model.Submission, error)

	// List returns submissions newest first, with an opaque continuation
	// cursor ("" when the result set is exhausted).
	List(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, string, error)
}
