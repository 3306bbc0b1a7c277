package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dtorcivia/slotwatch/internal/config"
	"github.com/dtorcivia/slotwatch/internal/util"
)

// maxBodyBytes bounds how much of an availability response is read.
const maxBodyBytes = 10 << 20

// ErrUnexpectedStatus is returned for non-2xx availability responses.
var ErrUnexpectedStatus = errors.New("unexpected availability status")

// Client fetches availability payloads.
type Client struct {
	client    *http.Client
	userAgent string
	logger    *util.Logger
}

// NewClient creates a new availability client.
func NewClient(cfg *config.AvailabilityConfig, logger *util.Logger) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.DefaultUserAgent
	}
	if logger == nil {
		logger = util.GetDefaultLogger()
	}
	return &Client{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger,
	}
}

// Fetch issues a single GET to rawURL and decodes the payload.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Some availability endpoints reject non-browser clients.
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Sending HTTP request", "url", rawURL)
	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("Response received",
		"status", resp.StatusCode,
		"length", len(body),
		"elapsed", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, resp.StatusCode, util.TruncateString(string(body), 200))
	}

	var payload Response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	c.logger.Debug("JSON parsed successfully",
		"total", payload.Total,
		"days", len(payload.Availabilities),
		"slots", payload.SlotCount(),
	)

	return &payload, nil
}
