package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client delivers summary emails through the Postmark API.
// Docs: https://postmarkapp.com/developer/api/email-api
// Endpoint: POST https://api.postmarkapp.com/email
// Request: {"From": ..., "To": ..., "Subject": ..., "HtmlBody": ...}
type Client struct {
	serverToken string
	sender      string
	endpoint    string
	httpClient  *http.Client
}

// NewClient constructs a Postmark email client.
func NewClient(serverToken, sender string) *Client {
	return &Client{
		serverToken: serverToken,
		sender:      sender,
		endpoint:    "https://api.postmarkapp.com/email",
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Send delivers one HTML email to all recipients.
func (c *Client) Send(ctx context.Context, subject, htmlBody string, recipients []string) error {
	if len(recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	payload := map[string]string{
		"From":     c.sender,
		"To":       strings.Join(recipients, ","),
		"Subject":  subject,
		"HtmlBody": htmlBody,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", c.serverToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("postmark request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body struct {
			ErrorCode int    `json:"ErrorCode"`
			Message   string `json:"Message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&body)
		return fmt.Errorf("postmark error: status %d, code %d: %s", resp.StatusCode, body.ErrorCode, body.Message)
	}

	return nil
}
