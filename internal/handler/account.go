package handler

import (
	"net/http"

	"vbank-service/internal/middleware"
	"vbank-service/internal/usecase/account"

	"go.uber.org/zap"
)

type AccountHandler struct {
	accountUC *account.Service
	logger    *zap.Logger
}

func NewAccountHandler(accountUC *account.Service, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, logger: logger}
}

// Dashboard returns the authenticated user's account overview.
// GET /accounts/dashboard
func (h *AccountHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]any{"message": "unauthorized"})
		return
	}

	dashboard, err := h.accountUC.GetDashboard(r.Context(), userID)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, dashboard)
}
