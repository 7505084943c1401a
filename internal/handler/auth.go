package handler

import (
	"encoding/json"
	"net/http"

	"vbank-service/internal/usecase/auth"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authUC *auth.Service
	logger *zap.Logger
}

func NewAuthHandler(authUC *auth.Service, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authUC: authUC, logger: logger}
}

// Register creates a user and their bank account.
// POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid request body"})
		return
	}

	user, account, err := h.authUC.Register(r.Context(), req)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	h.logger.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("account_number", account.AccountNumber))

	respondJSON(w, http.StatusCreated, map[string]any{
		"id":             user.ID,
		"full_name":      user.FullName,
		"email":          user.Email,
		"account_number": account.AccountNumber,
		"agency":         account.Agency,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a bearer token.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid request body"})
		return
	}

	result, err := h.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
