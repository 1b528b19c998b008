package summarizer

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const requestTimeout = 60 * time.Second

// The summary is dropped straight into an email HtmlBody, so the model is
// told to emit a bare HTML fragment.
const preamble = "Summarize the text the user provides and format the result " +
	"to be sent as the HtmlBody parameter of an email API. Don't add triple " +
	"backticks to denote the block of text. Output the HTML without HEAD or BODY tags."

// Client summarizes post bodies using the Cohere Chat API.
// SDK: github.com/cohere-ai/cohere-go/v2
type Client struct {
	client *cohereclient.Client
	model  string
}

// NewClient constructs a Cohere-backed summarizer.
func NewClient(apiKey, model string) *Client {
	// Custom HTTP client that forces HTTP/1.1 to avoid HTTP/2 protocol errors
	httpClient := &http.Client{
		Timeout: requestTimeout,
		Transport: &http.Transport{
			TLSNextProto:      make(map[string]func(authority string, c *tls.Conn) http.RoundTripper),
			ForceAttemptHTTP2: false,
		},
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Client{client: client, model: model}
}

// Summarize returns an HTML-fragment summary of the given text.
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("nothing to summarize")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message:  text,
		Model:    &c.model,
		Preamble: strPtr(preamble),
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		return "", errors.New("cohere chat returned empty summary")
	}

	return strings.TrimSpace(resp.Text), nil
}

func strPtr(s string) *string { return &s }
