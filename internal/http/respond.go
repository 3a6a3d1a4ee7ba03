package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/juanitaaa04/ethere-backend/internal/circuitbreaker"
	"github.com/juanitaaa04/ethere-backend/internal/config"
	"github.com/juanitaaa04/ethere-backend/internal/paypal"
	"github.com/juanitaaa04/ethere-backend/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondResult writes a PayPal result with status 200 whether or not PayPal
// accepted the call. Successful bodies are written byte for byte.
func respondResult(w http.ResponseWriter, res *paypal.Result) {
	if res.OK() {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(res.Body); err != nil {
			slog.Error("failed to write response", slog.Any("error", err))
		}
		return
	}
	respondJSON(w, http.StatusOK, res.Failure)
}

// decodeJSON reads at most limit bytes of JSON from the request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	if limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, limit)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// handleServiceError maps the error taxonomy onto HTTP statuses. PayPal business
// errors never get here: they are returned as results.
func handleServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	var (
		validation *service.ValidationError
		missing    *config.MissingSettingError
		authErr    *paypal.AuthError
		transport  *paypal.TransportError
	)

	var status int
	resp := ErrorResponse{Error: err.Error()}

	switch {
	case errors.As(err, &validation):
		status, resp.Code = http.StatusBadRequest, validation.Code
	case errors.As(err, &missing):
		status, resp.Code = http.StatusInternalServerError, "configuration_error"
	case errors.As(err, &authErr):
		status, resp.Code = http.StatusBadGateway, "upstream_auth_failed"
		resp.Error = "PayPal auth failed"
		resp.Details = authErr.Body
	case errors.As(err, &transport):
		switch {
		case errors.Is(err, circuitbreaker.ErrOpen):
			status, resp.Code = http.StatusServiceUnavailable, "service_unavailable"
		case transport.Timeout():
			status, resp.Code = http.StatusGatewayTimeout, "timeout"
		default:
			status, resp.Code = http.StatusBadGateway, "upstream_unreachable"
		}
	default:
		status, resp.Code = http.StatusInternalServerError, "internal_error"
		resp.Error = "internal server error"
	}

	if status >= http.StatusInternalServerError {
		log.ErrorContext(r.Context(), "request failed",
			slog.String("code", resp.Code),
			slog.Int("status", status),
			slog.Any("error", err))
	}
	respondJSON(w, status, resp)
}

func respondDecodeError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		respondError(w, http.StatusRequestEntityTooLarge, "request_too_large",
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}
	respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
}
