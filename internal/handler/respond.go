package handler

import (
	"encoding/json"
	"net/http"

	"vbank-service/internal/domain"

	"go.uber.org/zap"
)

type apiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type apiError struct {
	Status  string           `json:"status"`
	Kind    domain.ErrorKind `json:"kind"`
	Field   string           `json:"field,omitempty"`
	Message string           `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiResponse{Status: "success", Data: data})
}

// respondError maps each domain error kind to its stable HTTP status class.
// Internal failures are logged in full and surfaced generically.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	de := domain.AsError(err)

	status := statusFor(de.Kind)
	if de.Kind == domain.KindInternal {
		logger.Error("request failed", zap.Error(err))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apiError{
		Status:  "error",
		Kind:    de.Kind,
		Field:   de.Field,
		Message: de.Message,
	})
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindInvalidData:
		return http.StatusBadRequest
	case domain.KindInvalidPin, domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domain.KindInactiveAccount:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindInsufficientBalance:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
