// internal/api/handler/account.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/util"
)

// TokenCookie is the session cookie carrying the signed token.
const TokenCookie = "token"

// AccountHandler handles signup, login, logout and profile requests.
type AccountHandler struct {
	service  service.AccountService
	tokenTTL time.Duration
	logger   *slog.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(svc service.AccountService, tokenTTL time.Duration, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		service:  svc,
		tokenTTL: tokenTTL,
		logger:   logger,
	}
}

// SignUpRequest represents the request body for signup.
type SignUpRequest struct {
	Country  string      `json:"country"`
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// SignUp handles the account registration request.
// POST /signup
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	user, err := h.service.SignUp(r.Context(), req.Country, req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, map[string]interface{}{
		"message": "Account created",
		"user_id": user.ID,
		"wallet":  user.Wallet,
	})
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles the login request and sets the session cookie.
// POST /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(h.tokenTTL.Seconds()),
	})

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"user_id": user.ID,
		"role":    user.Role,
	})
}

// Logout clears the session cookie.
// POST /logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Profile returns the caller's account details.
// GET /profile
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	user, err := h.service.Profile(r.Context(), principal.UserID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"name":   user.Name,
		"email":  user.Email,
		"wallet": user.Wallet,
	})
}
