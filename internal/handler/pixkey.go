package handler

import (
	"encoding/json"
	"net/http"

	"vbank-service/internal/domain"
	"vbank-service/internal/middleware"
	"vbank-service/internal/usecase/pixkey"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PixKeyHandler struct {
	pixKeyUC *pixkey.Service
	logger   *zap.Logger
}

func NewPixKeyHandler(pixKeyUC *pixkey.Service, logger *zap.Logger) *PixKeyHandler {
	return &PixKeyHandler{pixKeyUC: pixKeyUC, logger: logger}
}

type createPixKeyRequest struct {
	KeyType  domain.PixKeyType `json:"key_type"`
	KeyValue string            `json:"key_value"`
}

// Create registers a new pix key for the authenticated user's account.
// POST /pix-keys
func (h *PixKeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	var req createPixKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid request body"})
		return
	}

	key, err := h.pixKeyUC.Register(r.Context(), userID, req.KeyType, req.KeyValue)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, key)
}

// List returns every pix key owned by the authenticated user.
// GET /pix-keys
func (h *PixKeyHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	keys, err := h.pixKeyUC.ListByUser(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, keys)
}

// Delete removes one of the authenticated user's pix keys.
// DELETE /pix-keys/{id}
func (h *PixKeyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	keyID := chi.URLParam(r, "id")
	if err := h.pixKeyUC.Delete(r.Context(), keyID, userID); err != nil {
		respondError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
