package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// sendRequest is the JSON body posted to the delivery endpoint, matching
// the contract of the send-notification-gestores function.
type sendRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

// WebhookChannel delivers messages by POSTing to the notification gateway.
// The base URL is injected from config so tests can point to a local mock.
type WebhookChannel struct {
	baseURL    string
	httpClient *http.Client
}

func NewWebhookChannel(baseURL string, timeout time.Duration) *WebhookChannel {
	return &WebhookChannel{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send posts the message to the gateway and treats any 2xx as delivered.
func (c *WebhookChannel) Send(ctx context.Context, to, message string) error {
	body, err := json.Marshal(sendRequest{PhoneNumber: to, Message: message})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected gateway status: %d", resp.StatusCode)
	}
	return nil
}

// compile-time check that WebhookChannel implements Channel
var _ Channel = (*WebhookChannel)(nil)
