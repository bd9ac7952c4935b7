// internal/api/handler/checkout.go
package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront/internal/auth"
	"storefront/internal/service"
	"storefront/internal/util"
)

// CheckoutHandler handles purchase and return requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// Purchase converts the caller's cart into a completed purchase.
// POST /purchase
func (h *CheckoutHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	total, err := h.service.Purchase(r.Context(), principal.UserID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"message": "Purchase completed",
		"total":   total,
	})
}

// ListPurchases returns the caller's purchase history.
// GET /purchases
func (h *CheckoutHandler) ListPurchases(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	purchases, err := h.service.ListPurchases(r.Context(), principal.UserID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"purchases": purchases})
}

// Return reverses one of the caller's sales.
// POST /purchases/{saleID}/return
func (h *CheckoutHandler) Return(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	saleIDStr := chi.URLParam(r, "saleID")
	saleID, err := strconv.ParseInt(saleIDStr, 10, 64)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.Return(r.Context(), principal.UserID, saleID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Product returned"})
}
