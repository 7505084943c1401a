package handler

import (
	"encoding/json"
	"net/http"

	"vbank-service/internal/middleware"
	"vbank-service/internal/usecase/transfer"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TransferHandler struct {
	transferUC *transfer.Service
	logger     *zap.Logger
}

func NewTransferHandler(transferUC *transfer.Service, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, logger: logger}
}

// ExecutePix runs a pix transfer from the authenticated user's account to
// the target key. An optional Idempotency-Key header makes retries safe.
// POST /transfers/pix
func (h *TransferHandler) ExecutePix(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	var req transfer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid request body"})
		return
	}
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		req.IdempotencyKey = &key
	}

	receipt, err := h.transferUC.Execute(r.Context(), userID, req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, receipt)
}

// CheckReceiver returns the masked owner details for a pix key, letting the
// payer confirm the destination before transferring.
// GET /transfers/check-receiver/{key}
func (h *TransferHandler) CheckReceiver(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	details, err := h.transferUC.CheckReceiver(r.Context(), key)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, details)
}
