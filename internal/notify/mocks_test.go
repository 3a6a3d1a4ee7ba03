package notify

import (
	"context"

	"github.com/juanitaaa04/ethere-backend/internal/domain"
	"github.com/segmentio/kafka-go"
)

type MockSink struct {
	name     string
	err      error
	received []domain.NotificationRecord
	ctxErr   error
}

func (m *MockSink) Name() string { return m.name }

func (m *MockSink) Notify(ctx context.Context, rec domain.NotificationRecord) error {
	m.received = append(m.received, rec)
	m.ctxErr = ctx.Err()
	return m.err
}

type MockWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (m *MockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.messages = append(m.messages, msgs...)
	return nil
}

func (m *MockWriter) Close() error {
	m.closed = true
	return nil
}
