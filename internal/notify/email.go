package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/johnsosoka/jscom-contact-services/internal/config"
	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// EmailAdapter delivers notifications over SMTP as an HTML email.
type EmailAdapter struct {
	host      string
	port      string
	username  string
	password  string
	sender    string
	recipient string

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailAdapter creates the email channel from configuration.
func NewEmailAdapter(cfg config.Config) *EmailAdapter {
	return &EmailAdapter{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		sender:    cfg.EmailSender,
		recipient: cfg.EmailRecipient,
		sendMail:  smtp.SendMail,
	}
}

func (a *EmailAdapter) Name() string { return "email" }

// Render produces the subject and escaped HTML body.
func (a *EmailAdapter) Render(sub *model.Submission) (Payload, error) {
	subject, body, err := renderEmail(sub)
	if err != nil {
		return Payload{}, err
	}
	return Payload{Subject: subject, HTML: body}, nil
}

// Send delivers the payload via SMTP. Configuration gaps are fatal (they
// cannot heal on retry); transport errors are retryable.
func (a *EmailAdapter) Send(_ context.Context, p Payload) (Status, error) {
	if a.host == "" {
		return FatalFailure, fmt.Errorf("smtp host not configured")
	}
	if a.recipient == "" || a.sender == "" {
		return FatalFailure, fmt.Errorf("email sender/recipient not configured")
	}

	headers := []string{
		fmt.Sprintf("From: %s", a.sender),
		fmt.Sprintf("To: %s", a.recipient),
		fmt.Sprintf("Subject: %s", p.Subject),
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}
	data := strings.Join(headers, "\r\n") + "\r\n\r\n" + p.HTML

	var auth smtp.Auth
	if a.username != "" || a.password != "" {
		auth = smtp.PlainAuth("", a.username, a.password, a.host)
	}

	addr := fmt.Sprintf("%s:%s", a.host, a.port)
	if err := a.sendMail(addr, auth, a.sender, []string{a.recipient}, []byte(data)); err != nil {
		return RetryableFailure, fmt.Errorf("smtp send: %w", err)
	}
	return Success, nil
}

var _ Adapter = (*EmailAdapter)(nil)
