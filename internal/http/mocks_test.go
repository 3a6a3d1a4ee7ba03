package http

import (
	"context"
	"io"
	"log/slog"

	"github.com/juanitaaa04/ethere-backend/internal/domain"
	"github.com/juanitaaa04/ethere-backend/internal/notify"
	"github.com/juanitaaa04/ethere-backend/internal/paypal"
	"github.com/juanitaaa04/ethere-backend/internal/service"
)

// --- Mocks ---

type OrderProcessorMock struct {
	result *paypal.Result
	err    error

	items      []domain.CartItem
	capturedID string
}

func (m *OrderProcessorMock) CreateOrder(_ context.Context, items []domain.CartItem) (*paypal.Result, error) {
	m.items = items
	return m.result, m.err
}

func (m *OrderProcessorMock) CaptureOrder(_ context.Context, orderID string) (*paypal.Result, error) {
	m.capturedID = orderID
	return m.result, m.err
}

type ConfigGetterMock struct {
	cfg service.PublicConfig
	err error
}

func (m ConfigGetterMock) GetConfig() (service.PublicConfig, error) {
	return m.cfg, m.err
}

type NotifierMock struct {
	records []domain.NotificationRecord
}

func (m *NotifierMock) Notify(_ context.Context, rec domain.NotificationRecord) notify.Acknowledgement {
	m.records = append(m.records, rec)
	return notify.Acknowledgement{Message: notify.AckMessage}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
