package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/juanitaaa04/ethere-backend/internal/config"
	"github.com/juanitaaa04/ethere-backend/internal/domain"
	"github.com/juanitaaa04/ethere-backend/internal/paypal"
	"github.com/juanitaaa04/ethere-backend/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(p Processor) *OrderService {
	conv := pricing.NewConverter(decimal.NewFromInt(83))
	return NewOrderService(p, conv, "USD", slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func item(name string, qty int, price string) domain.CartItem {
	return domain.CartItem{Name: name, Quantity: qty, Price: decimal.RequireFromString(price)}
}

func okResult(body string) *paypal.Result {
	return &paypal.Result{StatusCode: 201, Body: json.RawMessage(body)}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	mock := &MockProcessor{}
	svc := newTestService(mock)

	res, err := svc.CreateOrder(context.Background(), nil)

	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrEmptyCart)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "empty_cart", ve.Code)
	assert.Empty(t, mock.Calls)
}

func TestCreateOrder_InvalidItems(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.CartItem
	}{
		{"ZeroQuantity", []domain.CartItem{item("Tea", 0, "10")}},
		{"NegativeQuantity", []domain.CartItem{item("Tea", -2, "10")}},
		{"NegativePrice", []domain.CartItem{item("Tea", 1, "10"), item("Cup", 1, "-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockProcessor{}
			_, err := newTestService(mock).CreateOrder(context.Background(), tt.items)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "invalid_item", ve.Code)
			assert.ErrorIs(t, err, domain.ErrInvalidItem)
			assert.Empty(t, mock.Calls)
		})
	}
}

func TestCreateOrder_TokenThenCreate(t *testing.T) {
	mock := &MockProcessor{
		Token:  paypal.NewAccessToken("tok-1"),
		Result: okResult(`{"id":"5O190127TN364715T"}`),
	}
	svc := newTestService(mock)

	res, err := svc.CreateOrder(context.Background(), []domain.CartItem{item("Tea", 3, "100")})

	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.JSONEq(t, `{"id":"5O190127TN364715T"}`, string(res.Body))
	assert.Equal(t, []string{"token", "create"}, mock.Calls)
	assert.Equal(t, "tok-1", mock.UsedToken)
	require.NotNil(t, mock.CreatedOrder)
	assert.Equal(t, "3.60", mock.CreatedOrder.PurchaseUnits[0].Amount.Value)
}

func TestCreateOrder_TokenFailureStopsChain(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"Configuration", &config.MissingSettingError{Names: []string{"PAYPAL_SECRET"}}},
		{"Auth", &paypal.AuthError{StatusCode: 401, Body: `{"error":"invalid_client"}`}},
		{"Transport", &paypal.TransportError{Op: "token", Err: context.DeadlineExceeded}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockProcessor{TokenErr: tt.err}
			res, err := newTestService(mock).CreateOrder(context.Background(), []domain.CartItem{item("Tea", 1, "83")})

			assert.Nil(t, res)
			assert.True(t, errors.Is(err, tt.err))
			assert.Equal(t, []string{"token"}, mock.Calls)
		})
	}
}

func TestCreateOrder_RejectionIsData(t *testing.T) {
	mock := &MockProcessor{
		Result: &paypal.Result{
			StatusCode: 422,
			Failure: &paypal.ErrorEnvelope{
				Error:       true,
				StatusCode:  422,
				PayPalError: json.RawMessage(`{"name":"UNPROCESSABLE_ENTITY"}`),
			},
		},
	}

	res, err := newTestService(mock).CreateOrder(context.Background(), []domain.CartItem{item("Tea", 1, "83")})

	require.NoError(t, err)
	assert.False(t, res.OK())
}

func TestBuildOrderRequest(t *testing.T) {
	svc := newTestService(&MockProcessor{})

	req := svc.BuildOrderRequest([]domain.CartItem{
		item("Tea", 3, "100"),
		item("Cup", 2, "499"),
	})

	out, err := json.Marshal(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"intent": "CAPTURE",
		"purchase_units": [{
			"amount": {
				"currency_code": "USD",
				"value": "15.62",
				"breakdown": {"item_total": {"currency_code": "USD", "value": "15.62"}}
			},
			"items": [
				{"name": "Tea", "quantity": "3", "unit_amount": {"currency_code": "USD", "value": "1.20"}},
				{"name": "Cup", "quantity": "2", "unit_amount": {"currency_code": "USD", "value": "6.01"}}
			]
		}]
	}`, string(out))
}

func TestBuildOrderRequest_PerUnitRounding(t *testing.T) {
	svc := newTestService(&MockProcessor{})

	req := svc.BuildOrderRequest([]domain.CartItem{item("Tea", 3, "100")})

	// 300 / 83 = 3.614..., but each unit rounds to 1.20 first.
	assert.Equal(t, "3.60", req.PurchaseUnits[0].Amount.Value)
	assert.Equal(t, "3.60", req.PurchaseUnits[0].Amount.Breakdown.ItemTotal.Value)
}

func TestCaptureOrder_Success(t *testing.T) {
	mock := &MockProcessor{
		Token:  paypal.NewAccessToken("tok-2"),
		Result: &paypal.Result{StatusCode: 200, Body: json.RawMessage(`{"status":"COMPLETED"}`)},
	}

	res, err := newTestService(mock).CaptureOrder(context.Background(), "5O190127TN364715T")

	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"COMPLETED"}`, string(res.Body))
	assert.Equal(t, []string{"token", "capture"}, mock.Calls)
	assert.Equal(t, "5O190127TN364715T", mock.CapturedID)
	assert.Equal(t, "tok-2", mock.UsedToken)
}

func TestCaptureOrder_MissingID(t *testing.T) {
	mock := &MockProcessor{}

	_, err := newTestService(mock).CaptureOrder(context.Background(), "")

	assert.ErrorIs(t, err, ErrMissingOrderID)
	assert.Empty(t, mock.Calls)
}

func TestCaptureOrder_TokenFailure(t *testing.T) {
	authErr := &paypal.AuthError{StatusCode: 401}
	mock := &MockProcessor{TokenErr: authErr}

	_, err := newTestService(mock).CaptureOrder(context.Background(), "ABC")

	assert.ErrorIs(t, err, authErr)
	assert.Equal(t, []string{"token"}, mock.Calls)
}
