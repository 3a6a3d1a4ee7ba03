// Package notify tells the shop owner about paid orders.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/juanitaaa04/ethere-backend/internal/domain"
)

const AckMessage = "Owner notified"

// Sink receives a paid-order record.
type Sink interface {
	Name() string
	Notify(ctx context.Context, rec domain.NotificationRecord) error
}

type Acknowledgement struct {
	Message string `json:"message"`
}

// Notifier fans a record out to every sink. Sink failures are logged and never
// reach the caller.
type Notifier struct {
	sinks   []Sink
	timeout time.Duration
	log     *slog.Logger
}

func NewNotifier(log *slog.Logger, timeout time.Duration, sinks ...Sink) *Notifier {
	if log == nil {
		log = slog.Default()
	}
	return &Notifier{sinks: sinks, timeout: timeout, log: log}
}

func (n *Notifier) Notify(ctx context.Context, rec domain.NotificationRecord) Acknowledgement {
	for _, s := range n.sinks {
		sctx, cancel := n.sinkContext(ctx)
		if err := s.Notify(sctx, rec); err != nil {
			n.log.ErrorContext(ctx, "owner notification failed",
				slog.String("sink", s.Name()),
				slog.String("payment_id", string(rec.PaymentID)),
				slog.Any("error", err))
		}
		cancel()
	}
	return Acknowledgement{Message: AckMessage}
}

// sinkContext detaches from the caller so a disconnecting browser does not drop
// the notification, while still bounding each sink.
func (n *Notifier) sinkContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if n.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, n.timeout)
}
