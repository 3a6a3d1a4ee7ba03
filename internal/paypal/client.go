// Package paypal talks to the PayPal REST API: OAuth client-credentials tokens and
// the v2 checkout orders endpoints.
package paypal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/juanitaaa04/ethere-backend/internal/config"
)

// maxBodySize caps how much of a PayPal response is read into memory.
const maxBodySize = 4 << 20

type Client struct {
	cfg        config.PayPal
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient builds a client for the configured environment. Timeouts are applied
// per call, so httpClient should not carry its own Timeout.
func NewClient(cfg config.PayPal, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{cfg: cfg, httpClient: httpClient, log: log}
}

// do sends req under timeout and returns the status and the fully read body.
func (c *Client) do(req *http.Request, op string, timeout time.Duration) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(req.Context(), timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return 0, nil, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.log.DebugContext(req.Context(), "paypal call finished",
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))
	return resp.StatusCode, body, nil
}

func (c *Client) url(path string) string {
	return c.cfg.BaseURL + path
}
