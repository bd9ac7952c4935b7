// internal/api/handler/catalog.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/service"
	"storefront/internal/util"
)

// CatalogHandler handles product listing and admin inventory requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc service.CatalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: svc,
		logger:  logger,
	}
}

// ProductRequest represents the request body for creating or updating a product.
type ProductRequest struct {
	Title   string          `json:"title"`
	Price   decimal.Decimal `json:"price"`
	Stock   int             `json:"stock"`
	Img     string          `json:"img"`
	StoreID *int64          `json:"store_id"`
}

// List returns the full catalog.
// GET /products
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"products": products})
}

// Get returns one product.
// GET /products/{productID}
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	product, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, product)
}

// Create adds a product to the catalog.
// POST /admin/products
func (h *CatalogHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	product := &domain.Product{
		Title:   req.Title,
		Price:   req.Price,
		Stock:   req.Stock,
		Img:     req.Img,
		StoreID: req.StoreID,
	}
	if err := h.service.CreateProduct(r.Context(), product); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusCreated, product)
}

// Update replaces a product's mutable fields.
// PUT /admin/products/{productID}
func (h *CatalogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	product := &domain.Product{
		ID:      id,
		Title:   req.Title,
		Price:   req.Price,
		Stock:   req.Stock,
		Img:     req.Img,
		StoreID: req.StoreID,
	}
	if err := h.service.UpdateProduct(r.Context(), product); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, product)
}

// Delete removes a product from the catalog.
// DELETE /admin/products/{productID}
func (h *CatalogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := productIDParam(r)
	if err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	if err := h.service.DeleteProduct(r.Context(), id); err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Product deleted"})
}

func productIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
}
