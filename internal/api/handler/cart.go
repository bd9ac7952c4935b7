// internal/api/handler/cart.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront/internal/auth"
	"storefront/internal/service"
	"storefront/internal/util"
)

// CartHandler handles HTTP requests related to the shopping cart.
type CartHandler struct {
	service service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddItemRequest represents the request body for adding a product to the cart.
type AddItemRequest struct {
	ProductID int64 `json:"product_id"`
}

// AddItem handles the add-to-cart request.
// POST /cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	var req AddItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	if req.ProductID == 0 {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.AddToCart(r.Context(), principal.UserID, req.ProductID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Product added to cart"})
}

// ViewCart handles the cart page request.
// GET /cart
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, h.logger, util.ErrInvalidCredentials)
		return
	}

	view, err := h.service.ViewCart(r.Context(), principal.UserID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, view)
}
