package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"simplifai-backend/internal/logger"
	"simplifai-backend/internal/models"
	"simplifai-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return errorRespWithFields(code, message, nil, r)
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: requestID(r),
		},
	}
}

func requestID(r *http.Request) string {
	if id := logger.RequestIDFromContext(r.Context()); id != "" {
		return id
	}
	return r.Header.Get("X-Request-ID")
}

// decodeBody reads a JSON body and writes the 400/413 response itself on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("PAYLOAD_TOO_LARGE", "Request body too large", r))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return false
	}
	return true
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *services.ValidationError
		missingErr    *services.MissingCredentialError
		providerErr   *services.ProviderError
	)
	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", validationErr.Fields, r))
	case errors.As(err, &missingErr):
		writeJSON(w, http.StatusBadRequest, errorResp("MISSING_API_KEY", missingErr.Error(), r))
	case errors.As(err, &providerErr):
		writeJSON(w, http.StatusInternalServerError, errorResp("PROVIDER_ERROR", providerErr.Error(), r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", err.Error(), r))
	}
}
