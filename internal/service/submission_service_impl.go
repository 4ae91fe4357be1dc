package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/johnsosoka/jscom-contact-services/internal/model"
	"github.com/johnsosoka/jscom-contact-services/internal/queue"
)

// submissionServiceImpl is the production implementation of SubmissionService.
type submissionServiceImpl struct {
	submissions queue.Queue
}

// NewSubmissionService creates a SubmissionService that enqueues to the
// given submission queue.
func NewSubmissionService(submissions queue.Queue) SubmissionService {
	return &submissionServiceImpl{submissions: submissions}
}

// Submit validates the request, constructs the Submission, and publishes it
// to the submission queue. The id and timestamp are assigned here, at
// ingress, so the downstream stages are idempotent with respect to queue
// redelivery.
func (s *submissionServiceImpl) Submit(ctx context.Context, req SubmissionRequest, ipAddress, userAgent string) (*model.Submission, error) {
	if strings.TrimSpace(req.ContactMessage) == "" {
		return nil, &ValidationError{Field: "contact_message"}
	}

	sub := &model.Submission{
		ID:             uuid.NewString(),
		ContactName:    strings.TrimSpace(req.ContactName),
		ContactEmail:   strings.TrimSpace(req.ContactEmail),
		ContactMessage: strings.TrimSpace(req.ContactMessage),
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		Timestamp:      time.Now().Unix(),
		ContactType:    model.ContactTypeStandard,
	}

	if req.Consulting {
		if strings.TrimSpace(req.CompanyName) == "" {
			return nil, &ValidationError{Field: "company_name"}
		}
		if strings.TrimSpace(req.Industry) == "" {
			return nil, &ValidationError{Field: "industry"}
		}
		sub.ContactType = model.ContactTypeConsulting
		sub.CompanyName = strings.TrimSpace(req.CompanyName)
		sub.Industry = strings.TrimSpace(req.Industry)
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return nil, fmt.Errorf("encode submission: %w", err)
	}
	if err := s.submissions.Publish(ctx, body); err != nil {
		return nil, fmt.Errorf("enqueue submission: %w", err)
	}

	slog.Info("submission enqueued",
		"submission_id", sub.ID,
		"contact_type", sub.ContactType,
		"ip_address", sub.IPAddress,
	)
	return sub, nil
}
