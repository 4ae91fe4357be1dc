package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
	"github.com/johnsosoka/jscom-contact-services/internal/queue"
)

// ---------------------------------------------------------------------------
// Mock queue
// ---------------------------------------------------------------------------

type mockQueue struct {
	publishFunc func(ctx context.Context, body []byte) error
	published   [][]byte
}

func (m *mockQueue) Publish(ctx context.Context, body []byte) error {
	if m.publishFunc != nil {
		if err := m.publishFunc(ctx, body); err != nil {
			return err
		}
	}
	m.published = append(m.published, body)
	return nil
}

func (m *mockQueue) Fetch(ctx context.Context, max int, wait time.Duration) ([]*queue.Delivery, error) {
	return nil, nil
}

// ---------------------------------------------------------------------------
// Submit tests
// ---------------------------------------------------------------------------

func TestSubmissionService_Submit_Standard(t *testing.T) {
	q := &mockQueue{}
	svc := NewSubmissionService(q)

	before := time.Now().Unix()
	sub, err := svc.Submit(context.Background(), SubmissionRequest{
		ContactName:    "Alice",
		ContactEmail:   "alice@example.com",
		ContactMessage: "hello",
	}, "203.0.113.7", "curl/8.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sub.ID == "" {
		t.Error("expected a server-generated id")
	}
	if sub.Timestamp < before || sub.Timestamp > time.Now().Unix() {
		t.Errorf("timestamp %d outside expected range", sub.Timestamp)
	}
	if sub.ContactType != model.ContactTypeStandard {
		t.Errorf("expected contact_type=standard, got %q", sub.ContactType)
	}
	if sub.CompanyName != "" || sub.Industry != "" {
		t.Error("standard submission must not carry company_name/industry")
	}
	if sub.IPAddress != "203.0.113.7" || sub.UserAgent != "curl/8.0" {
		t.Errorf("transport context not applied: ip=%q ua=%q", sub.IPAddress, sub.UserAgent)
	}

	if len(q.published) != 1 {
		t.Fatalf("expected 1 published message, got %d", len(q.published))
	}
	var wire model.Submission
	if err := json.Unmarshal(q.published[0], &wire); err != nil {
		t.Fatalf("published body is not a submission: %v", err)
	}
	if wire.ID != sub.ID {
		t.Errorf("wire id %q != returned id %q", wire.ID, sub.ID)
	}
}

func TestSubmissionService_Submit_Consulting(t *testing.T) {
	q := &mockQueue{}
	svc := NewSubmissionService(q)

	sub, err := svc.Submit(context.Background(), SubmissionRequest{
		ContactMessage: "hi",
		Consulting:     true,
		CompanyName:    "Acme",
		Industry:       "Tech",
	}, "198.51.100.1", "ua")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.ContactType != model.ContactTypeConsulting {
		t.Errorf("expected contact_type=consulting, got %q", sub.ContactType)
	}
	if sub.CompanyName != "Acme" || sub.Industry != "Tech" {
		t.Errorf("consulting fields not populated: %q %q", sub.CompanyName, sub.Industry)
	}
}

func TestSubmissionService_Submit_MessageRequired(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n\t"} {
		q := &mockQueue{}
		svc := NewSubmissionService(q)

		_, err := svc.Submit(context.Background(), SubmissionRequest{ContactMessage: msg}, "ip", "ua")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("message %q: expected ValidationError, got %v", msg, err)
		}
		if verr.Error() != "contact_message is a required field" {
			t.Errorf("unexpected error text: %q", verr.Error())
		}
		if len(q.published) != 0 {
			t.Error("validation failure must not enqueue")
		}
	}
}

func TestSubmissionService_Submit_ConsultingRequiresCompanyAndIndustry(t *testing.T) {
	cases := []struct {
		name  string
		req   SubmissionRequest
		field string
	}{
		{"missing company", SubmissionRequest{ContactMessage: "hi", Consulting: true, Industry: "Tech"}, "company_name"},
		{"missing industry", SubmissionRequest{ContactMessage: "hi", Consulting: true, CompanyName: "Acme"}, "industry"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &mockQueue{}
			svc := NewSubmissionService(q)

			_, err := svc.Submit(context.Background(), tc.req, "ip", "ua")
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
			if len(q.published) != 0 {
				t.Error("validation failure must not enqueue")
			}
		})
	}
}

// TestSubmissionService_Submit_EnqueueFailure verifies the caller never sees
// success when the queue write fails.
func TestSubmissionService_Submit_EnqueueFailure(t *testing.T) {
	q := &mockQueue{
		publishFunc: func(ctx context.Context, body []byte) error {
			return errors.New("queue unavailable")
		},
	}
	svc := NewSubmissionService(q)

	_, err := svc.Submit(context.Background(), SubmissionRequest{ContactMessage: "hello"}, "ip", "ua")
	if err == nil {
		t.Fatal("expected an error when enqueue fails")
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		t.Error("enqueue failure must not be reported as a validation error")
	}
}

func TestSubmissionService_Submit_GeneratesUniqueIDs(t *testing.T) {
	q := &mockQueue{}
	svc := NewSubmissionService(q)

	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		sub, err := svc.Submit(context.Background(), SubmissionRequest{ContactMessage: "hello"}, "ip", "ua")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[sub.ID] {
			t.Fatalf("duplicate id generated: %s", sub.ID)
		}
		seen[sub.ID] = true
	}
}
