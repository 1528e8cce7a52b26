package handlers

import (
	"net/http"

	"simplifai-backend/internal/models"
)

type ChatHandler struct {
	relay relayService
}

func NewChatHandler(relay relayService) *ChatHandler {
	return &ChatHandler{relay: relay}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reply, err := h.relay.Chat(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}
