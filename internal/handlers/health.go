package handlers

import (
	"net/http"

	"simplifai-backend/internal/models"
)

type HealthHandler struct {
	model       string
	hasFallback bool
}

func NewHealthHandler(model string, hasFallback bool) *HealthHandler {
	return &HealthHandler{model: model, hasFallback: hasFallback}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthResponse{
		Status:                "ok",
		Model:                 h.model,
		FallbackKeyConfigured: h.hasFallback,
	})
}
