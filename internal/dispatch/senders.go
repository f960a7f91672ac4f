package dispatch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// LogSender writes reports to the process log.
type LogSender struct{}

func (LogSender) Send(ctx context.Context, msg Message) error {
	log.Printf("INFO: dispatch: report %s for %s (%s):\n%s",
		msg.Report.ID, msg.Recipient, msg.Report.ParseMode, msg.Report.Text)
	return nil
}

// WebhookSender POSTs messages as JSON to a fixed URL.
type WebhookSender struct {
	client *resty.Client
	url    string
}

func NewWebhookSender(url string, timeout time.Duration) *WebhookSender {
	return &WebhookSender{
		client: resty.New().SetTimeout(timeout),
		url:    url,
	}
}

func (s *WebhookSender) Send(ctx context.Context, msg Message) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post(s.url)
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("webhook returned non-2xx status: %d", resp.StatusCode())
	}
	return nil
}
