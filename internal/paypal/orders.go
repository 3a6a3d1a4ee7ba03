package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
)

const IntentCapture = "CAPTURE"

// OrderRequest is the body of POST /v2/checkout/orders.
type OrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []PurchaseUnit `json:"purchase_units"`
}

type PurchaseUnit struct {
	Amount Amount `json:"amount"`
	Items  []Item `json:"items"`
}

type Amount struct {
	Money
	Breakdown Breakdown `json:"breakdown"`
}

type Breakdown struct {
	ItemTotal Money `json:"item_total"`
}

type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

type Item struct {
	Name       string `json:"name"`
	Quantity   string `json:"quantity"`
	UnitAmount Money  `json:"unit_amount"`
}

// CreateOrder posts req with the given bearer token.
func (c *Client) CreateOrder(ctx context.Context, token AccessToken, order OrderRequest) (*Result, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}
	c.log.InfoContext(ctx, "payload to PayPal", slog.String("body", string(payload)))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/v2/checkout/orders"), bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.authorize(req, token)

	status, body, err := c.do(req, "create_order", c.cfg.OrderTimeout)
	if err != nil {
		return nil, err
	}
	c.log.InfoContext(ctx, "PayPal response",
		slog.Int("status", status),
		slog.String("body", string(body)))
	return newResult(status, body), nil
}

// CaptureOrder captures the funds of an order the customer has approved.
func (c *Client) CaptureOrder(ctx context.Context, token AccessToken, orderID string) (*Result, error) {
	path := "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), nil)
	if err != nil {
		return nil, err
	}
	c.authorize(req, token)
	req.Header.Set("Prefer", "return=representation")

	status, body, err := c.do(req, "capture_order", c.cfg.OrderTimeout)
	if err != nil {
		return nil, err
	}
	res := newResult(status, body)
	if !res.OK() {
		c.log.WarnContext(ctx, "capture error",
			slog.String("order_id", orderID),
			slog.Int("status", status),
			slog.String("body", string(body)))
	}
	return res, nil
}

func (c *Client) authorize(req *http.Request, token AccessToken) {
	req.Header.Set("Authorization", "Bearer "+token.Value())
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
