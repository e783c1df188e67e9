package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Submitter delivers a wellness record to the collector.
type Submitter interface {
	Submit(ctx context.Context, rec WellnessRecord) error
}

// CollectorClient posts wellness records to the collector API.
type CollectorClient struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

func NewCollectorClient(baseURL string) *CollectorClient {
	return &CollectorClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithAuthToken attaches a Bearer token to every submission.
func (c *CollectorClient) WithAuthToken(token string) *CollectorClient {
	c.authToken = token
	return c
}

// Submit posts the record to POST /api/health. Any non-2xx status is an
// error; the caller keeps its form state and may retry.
func (c *CollectorClient) Submit(ctx context.Context, rec WellnessRecord) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode wellness record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/health", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit wellness record: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("submit wellness record: status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return nil
}
