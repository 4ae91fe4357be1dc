package service

import (
	"context"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// SubmissionRequest is the validated-input shape for a contact-form
// submission. IP address and user agent are not part of it: they are derived
// from the transport by the handler and passed separately, so client-supplied
// values can never override them.
type SubmissionRequest struct {
	ContactName    string
	ContactEmail   string
	ContactMessage string
	Consulting     bool
	CompanyName    string
	Industry       string
}

// SubmissionService is the ingress stage: validate a request, construct a
// Submission with a server-generated id and timestamp, and enqueue it.
type SubmissionService interface {
	// Submit returns the enqueued submission. A *ValidationError means the
	// input was rejected and nothing was enqueued; any other error means
	// the enqueue itself failed and the caller must not report success.
	Submit(ctx context.Context, req SubmissionRequest, ipAddress, userAgent string) (*model.Submission, error)
}

// ValidationError reports a missing or malformed input field. It is
// user-correctable and never retried.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is a required field"
}
