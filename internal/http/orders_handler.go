package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juanitaaa04/ethere-backend/internal/domain"
	"github.com/juanitaaa04/ethere-backend/internal/paypal"
)

type OrderProcessor interface {
	CreateOrder(ctx context.Context, items []domain.CartItem) (*paypal.Result, error)
	CaptureOrder(ctx context.Context, orderID string) (*paypal.Result, error)
}

type OrdersHandler struct {
	orders      OrderProcessor
	maxBodySize int64
	log         *slog.Logger
}

func NewOrdersHandler(orders OrderProcessor, maxBodySize int64, log *slog.Logger) *OrdersHandler {
	return &OrdersHandler{
		orders:      orders,
		maxBodySize: maxBodySize,
		log:         log,
	}
}

type CreateOrderRequestDTO struct {
	Items []domain.CartItem `json:"items"`
}

// POST /api/orders
func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequestDTO
	if err := decodeJSON(w, r, h.maxBodySize, &req); err != nil {
		if errors.Is(err, domain.ErrInvalidItem) {
			respondError(w, http.StatusBadRequest, "invalid_item", err.Error())
			return
		}
		respondDecodeError(w, err)
		return
	}

	res, err := h.orders.CreateOrder(r.Context(), req.Items)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	respondResult(w, res)
}

// POST /api/orders/{order_id}/capture
func (h *OrdersHandler) Capture(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	res, err := h.orders.CaptureOrder(r.Context(), orderID)
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	respondResult(w, res)
}
