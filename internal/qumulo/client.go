// Package qumulo provides a minimal client for the cluster's analytics
// REST API.
package qumulo

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Joe-Costa/qumulo-usage-report/internal/logger"
	"github.com/Joe-Costa/qumulo-usage-report/internal/models"
)

const (
	capacityHistoryPath = "/v1/analytics/capacity-history/"

	defaultTimeout = 30 * time.Second
)

// Client talks to a single cluster over HTTPS using an opaque bearer
// token. The zero value is not usable; construct with New.
type Client struct {
	httpClient *http.Client
	host       string
	port       int
	token      string
}

// Option configures a Client.
type Option func(*Client)

// WithInsecureTLS disables server certificate verification. Clusters
// commonly run with self-signed certificates; callers must opt in to this
// explicitly, verification stays on by default.
func WithInsecureTLS() Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
}

// WithTimeout overrides the default 30s request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// New creates a client for the cluster at host:port.
func New(host string, port int, token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		host:       host,
		port:       port,
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token, for credential rotation without
// rebuilding the client.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Host returns the cluster host the client was built for.
func (c *Client) Host() string {
	return c.host
}

// CapacityHistory fetches the cluster's capacity-history samples for the
// given window. Begin and end are passed through to the API as Unix epoch
// seconds unchanged. The returned order is whatever the API produced;
// callers must not assume it is sorted.
func (c *Client) CapacityHistory(ctx context.Context, begin, end time.Time) ([]models.CapacitySample, error) {
	query := url.Values{}
	query.Set("begin-time", strconv.FormatInt(begin.Unix(), 10))
	query.Set("end-time", strconv.FormatInt(end.Unix(), 10))

	endpoint := url.URL{
		Scheme:   "https",
		Host:     fmt.Sprintf("%s:%d", c.host, c.port),
		Path:     capacityHistoryPath,
		RawQuery: query.Encode(),
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create capacity history request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("capacity history request failed: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Error("failed to close response body", "error", err)
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read capacity history response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Surface the raw body so the operator sees the cluster's own
		// error text.
		return nil, fmt.Errorf("capacity history request failed (status %d): %s", resp.StatusCode, string(body))
	}

	var samples []models.CapacitySample
	if err := json.Unmarshal(body, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse capacity history response: %w", err)
	}

	return samples, nil
}
