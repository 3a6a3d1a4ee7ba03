// Package circuitbreaker guards outbound HTTP transports with a gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrOpen is returned while the breaker rejects calls.
var ErrOpen = errors.New("circuit breaker is open")

type Settings struct {
	Name             string
	FailureThreshold uint32
	OpenTimeout      time.Duration
	Logger           *slog.Logger
}

// Transport trips after FailureThreshold consecutive transport errors. HTTP
// responses of any status count as successes: only an unreachable upstream opens it.
type Transport struct {
	next http.RoundTripper
	cb   *gobreaker.CircuitBreaker[*http.Response]
}

func NewTransport(next http.RoundTripper, s Settings) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	log := s.Logger
	if log == nil {
		log = slog.Default()
	}
	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        s.Name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		// A caller that went away says nothing about the upstream.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	return &Transport{next: next, cb: cb}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.cb.Execute(func() (*http.Response, error) {
		return t.next.RoundTrip(req)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, ErrOpen
	}
	return resp, err
}

func (t *Transport) State() gobreaker.State {
	return t.cb.State()
}
