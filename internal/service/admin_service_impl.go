package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnsosoka/jscom-contact-services/internal/model"
	"github.com/johnsosoka/jscom-contact-services/internal/repository"
)

// adminServiceImpl is the production implementation of AdminService.
type adminServiceImpl struct {
	messages  repository.MessageRepository
	blocklist repository.BlockListRepository
}

// NewAdminService creates an AdminService backed by the given repositories.
func NewAdminService(messages repository.MessageRepository, blocklist repository.BlockListRepository) AdminService {
	return &adminServiceImpl{messages: messages, blocklist: blocklist}
}

func (s *adminServiceImpl) ListMessages(ctx context.Context, opts model.SubmissionListOptions) ([]*model.Submission, string, error) {
	if opts.Limit <= 0 || opts.Limit > 100 {
		opts.Limit = 20
	}
	return s.messages.List(ctx, opts)
}

func (s *adminServiceImpl) GetMessage(ctx context.Context, id string) (*model.Submission, error) {
	return s.messages.Get(ctx, id)
}

func (s *adminServiceImpl) ListBlocked(ctx context.Context) ([]*model.BlockEntry, error) {
	return s.blocklist.List(ctx)
}

// Block adds a block entry for the given IP address. The entry takes effect
// for submissions filtered after the write; already-stored submissions keep
// the is_blocked value observed at their filter time.
func (s *adminServiceImpl) Block(ctx context.Context, ipAddress, userAgent string) (*model.BlockEntry, error) {
	if ipAddress == "" {
		return nil, &ValidationError{Field: "ip_address"}
	}
	entry := &model.BlockEntry{
		ID:        uuid.NewString(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
		IsBlocked: true,
	}
	if err := s.blocklist.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *adminServiceImpl) Unblock(ctx context.Context, id string) error {
	return s.blocklist.Delete(ctx, id)
}
