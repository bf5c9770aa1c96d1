// Package weatherxm implements the client for the WeatherXM HTTP API.
// Every tool call funnels through Client.Fetch, which performs exactly one
// authenticated GET and normalizes all failures into *types.ToolError.
package weatherxm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/weathermcp/weathermcp/internal/telemetry"
	"github.com/weathermcp/weathermcp/internal/types"
)

// DefaultBaseURL is the versioned WeatherXM API prefix.
const DefaultBaseURL = "https://api.weatherxm.com/v1"

const defaultTimeout = 30 * time.Second

// Config carries the upstream settings injected at construction time.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client performs authenticated requests against WeatherXM. It holds no
// mutable state beyond the read-only credential, so concurrent calls need
// no coordination.
type Client struct {
	baseURL *url.URL
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a client from configuration. A missing API key is not a
// construction error; it is reported on the first Fetch instead.
func New(cfg Config, logger *slog.Logger) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	parsed, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base_url: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: parsed,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// Fetch issues a single GET to the named endpoint with the given query
// parameters and returns the raw JSON body on status 200. No retry, no
// caching; cancellation of ctx aborts the in-flight request. Every failure
// path returns a *types.ToolError.
func (c *Client) Fetch(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		c.logger.Error("weatherxm api key not set")
		return nil, types.NewToolError(http.StatusInternalServerError, "WeatherXM API key not set.")
	}

	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, endpoint)
	u.RawQuery = params.Encode()
	target := u.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, types.Errorf(http.StatusInternalServerError, "Unexpected error: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Info("requesting weatherxm", "endpoint", endpoint, "params", params.Encode())

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		telemetry.ObserveUpstreamRequest(endpoint, "transport_error", time.Since(start))
		c.logger.Error("weatherxm request failed", "endpoint", endpoint, "err", err)
		return nil, types.Errorf(http.StatusInternalServerError, "Request error: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		telemetry.ObserveUpstreamRequest(endpoint, "read_error", time.Since(start))
		return nil, types.Errorf(http.StatusInternalServerError, "Unexpected error: %v", err)
	}
	telemetry.ObserveUpstreamRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode != http.StatusOK {
		msg := errorMessage(body)
		c.logger.Error("weatherxm api error", "status", resp.StatusCode, "message", msg)
		return nil, types.NewToolError(resp.StatusCode, msg)
	}

	c.logger.Info("weatherxm api success", "endpoint", endpoint)

	// Success bodies pass through untouched. An unparsable 200 body
	// degrades to null rather than failing the call.
	if !json.Valid(body) {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(body), nil
}

// errorMessage extracts the upstream envelope's error.message when the
// body decodes and carries one; otherwise the raw body text is the
// message. The envelope is never assumed present for any error class.
func errorMessage(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return string(body)
}
