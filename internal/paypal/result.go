package paypal

import (
	"encoding/json"
	"net/http"
)

// Result is the outcome of an order create or capture call that PayPal answered.
// Exactly one of Body and Failure is set.
type Result struct {
	StatusCode int
	Body       json.RawMessage
	Failure    *ErrorEnvelope
}

// ErrorEnvelope carries PayPal's error for the frontend to inspect.
type ErrorEnvelope struct {
	Error       bool            `json:"error"`
	StatusCode  int             `json:"status_code"`
	PayPalError json.RawMessage `json:"paypal_error"`
}

func (r *Result) OK() bool {
	return r.Failure == nil
}

func (r *Result) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}
	return r.Body, nil
}

// newResult maps a PayPal response: 200 and 201 pass the body through, anything
// else becomes an ErrorEnvelope. Bodies that are not JSON are kept as text.
func newResult(status int, body []byte) *Result {
	if status == http.StatusOK || status == http.StatusCreated {
		if json.Valid(body) {
			return &Result{StatusCode: status, Body: json.RawMessage(body)}
		}
		wrapped, _ := json.Marshal(map[string]string{"error": string(body)})
		return &Result{StatusCode: status, Body: wrapped}
	}

	detail := json.RawMessage(body)
	if !json.Valid(body) {
		detail, _ = json.Marshal(string(body))
	}
	return &Result{
		StatusCode: status,
		Failure: &ErrorEnvelope{
			Error:       true,
			StatusCode:  status,
			PayPalError: detail,
		},
	}
}
