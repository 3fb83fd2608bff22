package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHealthTimeout bounds the health probe
const DefaultHealthTimeout = 5 * time.Second

// HealthStatus reports service and dependency availability
type HealthStatus struct {
	Status   string            `json:"status"`
	Version  string            `json:"version,omitempty"`
	Services map[string]string `json:"services,omitempty"`
}

// Healthy reports whether the service considers itself usable
func (h *HealthStatus) Healthy() bool {
	return h.Status == "ok" || h.Status == "healthy"
}

// Health probes the service health endpoint. Used by connection-health
// monitoring, never by the cache path.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	timeout := DefaultHealthTimeout
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{Status: resp.StatusCode}
	}

	var status HealthStatus
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&status); err != nil {
		return nil, &TransportError{Err: fmt.Errorf("decode health response: %w", err)}
	}
	return &status, nil
}
