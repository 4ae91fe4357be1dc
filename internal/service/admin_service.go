package service

import (
	"context"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// AdminService is the read/CRUD surface over the message store and block
// list consumed by the admin API. It never touches the queues; the pipeline
// remains the only writer of submissions.
type AdminService interface {
	ListMessages(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, string, error)
	GetMessage(ctx context.Context, id string) (*model.Submission, error)

	ListBlocked(ctx context.Context) ([]*model.BlockEntry, error)
	Block(ctx context.Context, ipAddress, userAgent string) (*model.BlockEntry, error)
	Unblock(ctx context.Context, id string) error
}
