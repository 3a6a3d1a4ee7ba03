package http

import (
	"context"
	"net/http"

	"github.com/juanitaaa04/ethere-backend/internal/domain"
	"github.com/juanitaaa04/ethere-backend/internal/notify"
)

type OwnerNotifier interface {
	Notify(ctx context.Context, rec domain.NotificationRecord) notify.Acknowledgement
}

type NotifyHandler struct {
	notifier    OwnerNotifier
	maxBodySize int64
}

func NewNotifyHandler(notifier OwnerNotifier, maxBodySize int64) *NotifyHandler {
	return &NotifyHandler{notifier: notifier, maxBodySize: maxBodySize}
}

// POST /api/orders/notify
func (h *NotifyHandler) Notify(w http.ResponseWriter, r *http.Request) {
	var rec domain.NotificationRecord
	if err := decodeJSON(w, r, h.maxBodySize, &rec); err != nil {
		respondDecodeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, h.notifier.Notify(r.Context(), rec))
}
