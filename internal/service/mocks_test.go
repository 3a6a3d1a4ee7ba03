package service

import (
	"context"

	"github.com/juanitaaa04/ethere-backend/internal/paypal"
)

// MockProcessor implements Processor and records the order of calls.
type MockProcessor struct {
	Token    paypal.AccessToken
	TokenErr error

	Result *paypal.Result
	Err    error

	Calls        []string
	CreatedOrder *paypal.OrderRequest
	CapturedID   string
	UsedToken    string
}

func (m *MockProcessor) AcquireToken(_ context.Context) (paypal.AccessToken, error) {
	m.Calls = append(m.Calls, "token")
	return m.Token, m.TokenErr
}

func (m *MockProcessor) CreateOrder(_ context.Context, token paypal.AccessToken, order paypal.OrderRequest) (*paypal.Result, error) {
	m.Calls = append(m.Calls, "create")
	m.CreatedOrder = &order
	m.UsedToken = token.Value()
	return m.Result, m.Err
}

func (m *MockProcessor) CaptureOrder(_ context.Context, token paypal.AccessToken, orderID string) (*paypal.Result, error) {
	m.Calls = append(m.Calls, "capture")
	m.CapturedID = orderID
	m.UsedToken = token.Value()
	return m.Result, m.Err
}
