package notify

import (
	"strings"
	"testing"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// ---------------------------------------------------------------------------
// Email rendering
// ---------------------------------------------------------------------------

func TestRenderEmail_Standard(t *testing.T) {
	sub := &model.Submission{
		ID:             "s1",
		ContactName:    "Alice",
		ContactEmail:   "alice@example.com",
		ContactMessage: "I have a question",
		IPAddress:      "203.0.113.7",
		UserAgent:      "test-agent/1.0",
		ContactType:    model.ContactTypeStandard,
	}

	subject, body, err := renderEmail(sub)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if subject != "New Contact Message." {
		t.Errorf("unexpected subject: %q", subject)
	}
	for _, want := range []string{"Alice", "alice@example.com", "I have a question", "203.0.113.7", "test-agent/1.0", "John Has Been Contacted."} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
	if strings.Contains(body, "Company:") {
		t.Error("standard email must not include consulting fields")
	}
}

func TestRenderEmail_Consulting(t *testing.T) {
	sub := &model.Submission{
		ID:             "s2",
		ContactName:    "Bob",
		ContactMessage: "Need help",
		CompanyName:    "Acme Corp",
		Industry:       "Manufacturing",
		ContactType:    model.ContactTypeConsulting,
	}

	subject, body, err := renderEmail(sub)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if subject != "New Consulting Contact Message!" {
		t.Errorf("unexpected subject: %q", subject)
	}
	for _, want := range []string{"Acme Corp", "Manufacturing", "John Has Been Consulted!"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

// TestRenderEmail_EscapesHTML verifies markup in user-supplied fields is
// neutralized before it reaches an email client.
func TestRenderEmail_EscapesHTML(t *testing.T) {
	sub := &model.Submission{
		ID:             "s3",
		ContactName:    `<b>bold</b>`,
		ContactMessage: `<script>alert("xss")</script>`,
		ContactType:    model.ContactTypeStandard,
	}

	_, body, err := renderEmail(sub)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(body, "<script>") {
		t.Error("script tag survived rendering")
	}
	if !strings.Contains(body, "&lt;script&gt;") {
		t.Error("expected escaped script tag in body")
	}
	if strings.Contains(body, "<b>bold</b>") {
		t.Error("markup in contact_name survived rendering")
	}
}

func TestRenderEmail_MissingFieldsUsePlaceholders(t *testing.T) {
	sub := &model.Submission{ID: "s4", ContactMessage: "anon", ContactType: model.ContactTypeStandard}

	_, body, err := renderEmail(sub)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(body, "Unknown") {
		t.Error("expected Unknown placeholder for missing name/email")
	}
}

// ---------------------------------------------------------------------------
// Discord rendering
// ---------------------------------------------------------------------------

func TestRenderDiscord_Standard(t *testing.T) {
	sub := &model.Submission{
		ID:             "d1",
		ContactName:    "Alice",
		ContactEmail:   "alice@example.com",
		ContactMessage: "hi there",
		IPAddress:      "203.0.113.7",
		ContactType:    model.ContactTypeStandard,
	}

	text := renderDiscord(sub)
	if !strings.HasPrefix(text, "**New Contact Message!**") {
		t.Errorf("unexpected heading: %q", text)
	}
	for _, want := range []string{"**Name:** Alice", "**Email:** alice@example.com", "hi there", "**Source IP:** 203.0.113.7", "John Has Been Contacted."} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q", want)
		}
	}
	if strings.Contains(text, "**Company:**") {
		t.Error("standard message must not include consulting fields")
	}
}

func TestRenderDiscord_Consulting(t *testing.T) {
	sub := &model.Submission{
		ID:             "d2",
		ContactMessage: "help",
		CompanyName:    "Acme Corp",
		Industry:       "Retail",
		ContactType:    model.ContactTypeConsulting,
	}

	text := renderDiscord(sub)
	if !strings.HasPrefix(text, "**New Consulting Contact Message!**") {
		t.Errorf("unexpected heading: %q", text)
	}
	for _, want := range []string{"**Company:** Acme Corp", "**Industry:** Retail", "John Has Been Consulted!"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q", want)
		}
	}
}
