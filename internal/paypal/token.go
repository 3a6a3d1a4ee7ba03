package paypal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// AccessToken is a short-lived bearer token. It is never printed or logged.
type AccessToken struct {
	value string
}

func NewAccessToken(value string) AccessToken {
	return AccessToken{value: value}
}

func (t AccessToken) Value() string {
	return t.value
}

func (t AccessToken) String() string {
	return "[redacted]"
}

func (t AccessToken) GoString() string {
	return "paypal.AccessToken{[redacted]}"
}

func (t AccessToken) LogValue() slog.Value {
	return slog.StringValue("[redacted]")
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AcquireToken exchanges the client id and secret for a fresh access token.
// Nothing is sent when either credential is missing.
func (c *Client) AcquireToken(ctx context.Context) (AccessToken, error) {
	if err := c.cfg.RequireCredentials(); err != nil {
		return AccessToken{}, err
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/v1/oauth2/token"), strings.NewReader(form.Encode()))
	if err != nil {
		return AccessToken{}, err
	}
	req.SetBasicAuth(c.cfg.ClientID, c.cfg.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req, "token", c.cfg.TokenTimeout)
	if err != nil {
		return AccessToken{}, err
	}
	if status != http.StatusOK {
		c.log.ErrorContext(ctx, "PayPal auth error", slog.Int("status", status), slog.String("body", string(body)))
		return AccessToken{}, &AuthError{StatusCode: status, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return AccessToken{}, &AuthError{StatusCode: status, Body: "response has no access_token"}
	}
	return NewAccessToken(tr.AccessToken), nil
}
