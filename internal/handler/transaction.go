package handler

import (
	"net/http"

	"vbank-service/internal/middleware"
	"vbank-service/internal/usecase/transaction"

	"go.uber.org/zap"
)

type TransactionHandler struct {
	transactionUC *transaction.Service
	logger        *zap.Logger
}

func NewTransactionHandler(transactionUC *transaction.Service, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{transactionUC: transactionUC, logger: logger}
}

// Statement lists the authenticated user's ledger entries, newest first.
// GET /transactions/statement
func (h *TransactionHandler) Statement(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	entries, err := h.transactionUC.GetStatement(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, entries)
}
