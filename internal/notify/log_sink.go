package notify

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/juanitaaa04/ethere-backend/internal/domain"
)

// LogSink writes the record to the operational log.
type LogSink struct {
	log           *slog.Logger
	localCurrency string
}

func NewLogSink(log *slog.Logger, localCurrency string) *LogSink {
	if log == nil {
		log = slog.Default()
	}
	return &LogSink{log: log, localCurrency: localCurrency}
}

func (s *LogSink) Name() string { return "log" }

func (s *LogSink) Notify(ctx context.Context, rec domain.NotificationRecord) error {
	items := make([]any, 0, len(rec.Items))
	for i, it := range rec.Items {
		items = append(items, slog.Group(strconv.Itoa(i),
			slog.String("name", string(it.Name)),
			slog.String("quantity", string(it.Quantity)),
			slog.String("price", string(it.Price)),
		))
	}

	s.log.InfoContext(ctx, "new paid order received",
		slog.String("customer", string(rec.Name)),
		slog.String("email", string(rec.Email)),
		slog.String("phone", string(rec.Phone)),
		slog.String("address", string(rec.Address)),
		slog.String("delivery", string(rec.Delivery)),
		slog.String("payment_id", string(rec.PaymentID)),
		slog.String("currency", s.localCurrency),
		slog.Group("items", items...),
	)
	return nil
}
