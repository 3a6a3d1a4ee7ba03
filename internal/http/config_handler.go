package http

import (
	"log/slog"
	"net/http"

	"github.com/juanitaaa04/ethere-backend/internal/service"
)

type ConfigGetter interface {
	GetConfig() (service.PublicConfig, error)
}

type ConfigHandler struct {
	provider ConfigGetter
	log      *slog.Logger
}

func NewConfigHandler(provider ConfigGetter, log *slog.Logger) *ConfigHandler {
	return &ConfigHandler{provider: provider, log: log}
}

// GET /api/config
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.provider.GetConfig()
	if err != nil {
		handleServiceError(w, r, h.log, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}
