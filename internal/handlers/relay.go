package handlers

import (
	"context"
	"net/http"

	"simplifai-backend/internal/models"
)

type relayService interface {
	Simplify(ctx context.Context, req models.TextProcessRequest) (string, error)
	Translate(ctx context.Context, req models.TextProcessRequest, targetLanguage string) (string, error)
	Chat(ctx context.Context, req models.ChatRequest) (string, error)
}

// RelayHandler serves the simplify and translate endpoints.
type RelayHandler struct {
	relay relayService
}

func NewRelayHandler(relay relayService) *RelayHandler {
	return &RelayHandler{relay: relay}
}

func (h *RelayHandler) Simplify(w http.ResponseWriter, r *http.Request) {
	var req models.TextProcessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	text, err := h.relay.Simplify(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SimplifyResponse{SimplifiedText: text})
}

// Translate reads target_language from the query string, never the body.
func (h *RelayHandler) Translate(w http.ResponseWriter, r *http.Request) {
	var req models.TextProcessRequest
	if !decodeBody(w, r, &req) {
		return
	}

	text, err := h.relay.Translate(r.Context(), req, r.URL.Query().Get("target_language"))
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.TranslateResponse{TranslatedText: text})
}
