// Package client implements the HTTP transport to the Zyte API extraction
// endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Config controls client behavior.
type Config struct {
	APIKey     string
	APIURL     string
	Timeout    time.Duration
	MaxRetries int
}

// Client posts parameter payloads to the API and decodes replies. It is safe
// for concurrent use; the underlying http.Client pools connections.
type Client struct {
	cfg    Config
	http   *http.Client
	retry  *retryPolicy
	logger *zap.Logger
}

// New builds a Client.
func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		retry:  newRetryPolicy(cfg.MaxRetries),
		logger: logger,
	}
}

// Extract sends the payload, `{url, ...params}`, and returns the decoded
// JSON reply. Transport and API failures come back as *RequestError so the
// caller can distinguish them from local errors.
func (c *Client) Extract(ctx context.Context, payload map[string]any) (map[string]any, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode api payload: %w", err)
	}

	callID := uuid.NewString()
	var lastErr error
	for attempt := 0; ; attempt++ {
		reply, err := c.post(ctx, body)
		if err == nil {
			totalRequests.Inc()
			return reply, nil
		}
		lastErr = err
		if !c.retry.ShouldRetry(err, attempt) {
			break
		}
		totalRetries.Inc()
		c.logger.Warn("api call failed, retrying",
			zap.String("call_id", callID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if !c.retry.Wait(ctx, attempt) {
			lastErr = ctx.Err()
			break
		}
	}
	totalRequestErrors.Inc()
	c.logger.Error("api call abandoned",
		zap.String("call_id", callID),
		zap.Error(lastErr),
	)
	return nil, lastErr
}

func (c *Client) post(ctx context.Context, body []byte) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build api request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.SetBasicAuth(c.cfg.APIKey, "")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("api request: %w", err)
	}
	defer resp.Body.Close()

	replyBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read api response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newRequestError(resp.StatusCode, replyBody)
	}

	var reply map[string]any
	if err := json.Unmarshal(replyBody, &reply); err != nil {
		return nil, fmt.Errorf("decode api response: %w", err)
	}
	return reply, nil
}
