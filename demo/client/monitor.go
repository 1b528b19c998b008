package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusResponse is the JSON response from GET /
type StatusResponse struct {
	Status        string `json:"status"`
	WorkerActive  bool   `json:"worker_active"`
	PingActive    bool   `json:"ping_active"`
	LastProcessed string `json:"last_processed"`
}

// LifecycleResponse is the JSON response from POST /start and POST /stop
type LifecycleResponse struct {
	Status string `json:"status"`
}

// GetStatus fetches the current monitor status
func (c *Client) GetStatus(ctx context.Context) (*StatusResponse, error) {
	var status StatusResponse
	if err := c.doJSONRequest(ctx, http.MethodGet, "/", &status); err != nil {
		return nil, fmt.Errorf("failed to fetch status: %w", err)
	}
	return &status, nil
}

// StartWorker requests a worker start and returns the reported status string
func (c *Client) StartWorker(ctx context.Context) (string, error) {
	var resp LifecycleResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/start", &resp); err != nil {
		return "", fmt.Errorf("failed to start worker: %w", err)
	}
	return resp.Status, nil
}

// StopWorker requests a worker stop and returns the reported status string
func (c *Client) StopWorker(ctx context.Context) (string, error) {
	var resp LifecycleResponse
	if err := c.doJSONRequest(ctx, http.MethodPost, "/stop", &resp); err != nil {
		return "", fmt.Errorf("failed to stop worker: %w", err)
	}
	return resp.Status, nil
}

// doJSONRequest issues a request and decodes the JSON response into out.
func (c *Client) doJSONRequest(ctx context.Context, method, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
