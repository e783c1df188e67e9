package healthdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// bridgeClient talks to the local health bridge daemon that fronts the
// platform health APIs. All platform variants share it.
type bridgeClient struct {
	baseURL    string
	httpClient *http.Client
}

func newBridgeClient(baseURL string, timeout time.Duration) *bridgeClient {
	return &bridgeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Platform reports which native health API the bridge fronts
// ("ios" or "android").
func (c *bridgeClient) Platform(ctx context.Context) (string, error) {
	var out struct {
		Platform string `json:"platform"`
	}
	if err := c.getJSON(ctx, "/v1/platform", &out); err != nil {
		return "", err
	}
	return out.Platform, nil
}

func (c *bridgeClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *bridgeClient) postJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

func (c *bridgeClient) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("bridge %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("bridge %s: decode response: %w", req.URL.Path, err)
	}
	return nil
}
