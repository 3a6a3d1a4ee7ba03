package circuitbreaker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestTransport_OpensAfterConsecutiveFailures(t *testing.T) {
	var calls atomic.Int32
	failing := roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	})
	tr := NewTransport(failing, Settings{Name: "paypal", FailureThreshold: 2, OpenTimeout: time.Minute})
	client := &http.Client{Transport: tr}

	for i := 0; i < 2; i++ {
		_, err := client.Get("http://paypal.invalid/v1/oauth2/token")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrOpen))
	}
	assert.Equal(t, gobreaker.StateOpen, tr.State())

	_, err := client.Get("http://paypal.invalid/v1/oauth2/token")
	assert.ErrorIs(t, err, ErrOpen)
	assert.Equal(t, int32(2), calls.Load(), "open breaker must not reach the upstream")
}

func TestTransport_CallerCancellationDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	tr := NewTransport(http.DefaultTransport, Settings{Name: "paypal", FailureThreshold: 2, OpenTimeout: time.Minute})
	client := &http.Client{Transport: tr}

	for i := 0; i < 3; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		time.AfterFunc(20*time.Millisecond, cancel)

		_, err = client.Do(req)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		cancel()
	}
	assert.Equal(t, gobreaker.StateClosed, tr.State())
}

func TestTransport_DeadlineCountsAsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	tr := NewTransport(http.DefaultTransport, Settings{Name: "paypal", FailureThreshold: 1, OpenTimeout: time.Minute})
	client := &http.Client{Transport: tr}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	_, err = client.Do(req)
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateOpen, tr.State())
}

func TestTransport_HTTPErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	tr := NewTransport(http.DefaultTransport, Settings{Name: "paypal", FailureThreshold: 1, OpenTimeout: time.Minute})
	client := &http.Client{Transport: tr}

	for i := 0; i < 3; i++ {
		resp, err := client.Get(srv.URL)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	}
	assert.Equal(t, gobreaker.StateClosed, tr.State())
}

func TestTransport_HalfOpenRecovers(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	next := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		if fail.Load() {
			return nil, errors.New("timeout")
		}
		return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody, Request: r}, nil
	})
	tr := NewTransport(next, Settings{Name: "paypal", FailureThreshold: 1, OpenTimeout: 20 * time.Millisecond})
	client := &http.Client{Transport: tr}

	_, err := client.Get("http://paypal.invalid/")
	require.Error(t, err)
	assert.Equal(t, gobreaker.StateOpen, tr.State())

	fail.Store(false)
	time.Sleep(40 * time.Millisecond)

	resp, err := client.Get("http://paypal.invalid/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, gobreaker.StateClosed, tr.State())
}
