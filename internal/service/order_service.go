package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/juanitaaa04/ethere-backend/internal/domain"
	"github.com/juanitaaa04/ethere-backend/internal/paypal"
	"github.com/juanitaaa04/ethere-backend/internal/pricing"
)

// Processor is the part of the PayPal client the order flow needs.
type Processor interface {
	AcquireToken(ctx context.Context) (paypal.AccessToken, error)
	CreateOrder(ctx context.Context, token paypal.AccessToken, order paypal.OrderRequest) (*paypal.Result, error)
	CaptureOrder(ctx context.Context, token paypal.AccessToken, orderID string) (*paypal.Result, error)
}

type OrderService struct {
	processor Processor
	converter pricing.Converter
	currency  string
	log       *slog.Logger
}

func NewOrderService(processor Processor, converter pricing.Converter, currency string, log *slog.Logger) *OrderService {
	if log == nil {
		log = slog.Default()
	}
	return &OrderService{
		processor: processor,
		converter: converter,
		currency:  currency,
		log:       log,
	}
}

// CreateOrder validates the cart, converts it and creates a PayPal order with a
// fresh token. PayPal rejections come back as a failed Result, not as an error.
func (s *OrderService) CreateOrder(ctx context.Context, items []domain.CartItem) (*paypal.Result, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Code: "empty_cart", Err: ErrEmptyCart}
	}
	for i, item := range items {
		if item.Quantity < 1 {
			return nil, &ValidationError{Code: "invalid_item",
				Err: fmt.Errorf("%w: item %d quantity must be at least 1", domain.ErrInvalidItem, i)}
		}
		if item.Price.IsNegative() {
			return nil, &ValidationError{Code: "invalid_item",
				Err: fmt.Errorf("%w: item %d price must not be negative", domain.ErrInvalidItem, i)}
		}
	}

	s.log.InfoContext(ctx, "cart received", slog.Int("items", len(items)))
	order := s.BuildOrderRequest(items)

	token, err := s.processor.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.processor.CreateOrder(ctx, token, order)
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		s.log.WarnContext(ctx, "PayPal rejected order", slog.Int("status", res.StatusCode))
	}
	return res, nil
}

// BuildOrderRequest converts the cart into a single purchase unit to capture at once.
func (s *OrderService) BuildOrderRequest(items []domain.CartItem) paypal.OrderRequest {
	quote := s.converter.Quote(items)

	lines := make([]paypal.Item, 0, len(quote.Lines))
	for _, l := range quote.Lines {
		lines = append(lines, paypal.Item{
			Name:       l.Name,
			Quantity:   strconv.Itoa(l.Quantity),
			UnitAmount: s.money(l.UnitPrice.StringFixed(2)),
		})
	}

	total := s.money(quote.Total.StringFixed(2))
	return paypal.OrderRequest{
		Intent: paypal.IntentCapture,
		PurchaseUnits: []paypal.PurchaseUnit{{
			Amount: paypal.Amount{
				Money:     total,
				Breakdown: paypal.Breakdown{ItemTotal: total},
			},
			Items: lines,
		}},
	}
}

// CaptureOrder captures an order the customer approved on PayPal.
func (s *OrderService) CaptureOrder(ctx context.Context, orderID string) (*paypal.Result, error) {
	if orderID == "" {
		return nil, &ValidationError{Code: "missing_order_id", Err: ErrMissingOrderID}
	}

	token, err := s.processor.AcquireToken(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.processor.CaptureOrder(ctx, token, orderID)
	if err != nil {
		return nil, err
	}
	if res.OK() {
		s.log.InfoContext(ctx, "order captured", slog.String("order_id", orderID))
	}
	return res, nil
}

func (s *OrderService) money(value string) paypal.Money {
	return paypal.Money{CurrencyCode: s.currency, Value: value}
}
