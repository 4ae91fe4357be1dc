package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/johnsosoka/jscom-contact-services/internal/model"
)

// DiscordAdapter delivers notifications to a Discord webhook as a structured
// JSON POST with a bounded timeout.
type DiscordAdapter struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordAdapter creates the discord channel for the given webhook URL.
func NewDiscordAdapter(webhookURL string) *DiscordAdapter {
	return &DiscordAdapter{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (a *DiscordAdapter) Name() string { return "discord" }

// Render produces the markdown message content.
func (a *DiscordAdapter) Render(sub *model.Submission) (Payload, error) {
	return Payload{Text: renderDiscord(sub)}, nil
}

// Send posts the payload to the webhook. Timeouts, 408/429, and 5xx are
// retryable; any other non-2xx response (bad webhook, rejected payload) is
// fatal for this channel.
func (a *DiscordAdapter) Send(ctx context.Context, p Payload) (Status, error) {
	body, err := json.Marshal(map[string]string{"content": p.Text})
	if err != nil {
		return FatalFailure, fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.webhookURL, bytes.NewReader(body))
	if err != nil {
		return FatalFailure, fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return RetryableFailure, fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return Success, nil
	case resp.StatusCode == http.StatusRequestTimeout,
		resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode >= 500:
		return RetryableFailure, fmt.Errorf("webhook returned %d", resp.StatusCode)
	default:
		return FatalFailure, fmt.Errorf("webhook returned %d", resp.StatusCode)
	}
}

var _ Adapter = (*DiscordAdapter)(nil)
