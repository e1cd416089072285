// Package report implements the external error-reporting plugin boundary as
// a JSON webhook. Submissions are fire-and-forget from the caller's point of
// view; failures are returned but never escalated by the classifier.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single webhook submission.
const DefaultTimeout = 5 * time.Second

// Event is the payload posted to the webhook.
type Event struct {
	EventID   string            `json:"event_id"`
	Message   string            `json:"message"`
	Severity  string            `json:"severity"`
	Tags      map[string]string `json:"tags,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

// WebhookReporter posts error events to a configured HTTP endpoint.
type WebhookReporter struct {
	endpoint string
	client   *http.Client
}

// NewWebhookReporter creates a reporter posting to endpoint. If timeout is
// 0, DefaultTimeout is used.
func NewWebhookReporter(endpoint string, timeout time.Duration) *WebhookReporter {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &WebhookReporter{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// ReportMessage submits one event. Each submission gets a fresh event ID so
// the receiving system can deduplicate on its own terms.
func (r *WebhookReporter) ReportMessage(ctx context.Context, text, severity string, tags map[string]string) error {
	event := Event{
		EventID:   uuid.New().String(),
		Message:   text,
		Severity:  severity,
		Tags:      tags,
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal report event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit report: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("report endpoint returned %s", resp.Status)
	}
	return nil
}
