// internal/repository/sale_repo.go
package repository

import (
	"context"

	"storefront/internal/domain"
)

// SaleRepository defines the interface for sale data operations.
type SaleRepository interface {
	// CreateSale adds a new sale record to the database.
	CreateSale(ctx context.Context, q DBExecutor, sale *domain.Sale) error
	// GetSaleForUpdate retrieves a sale by ID and owner under a row lock.
	// A sale belonging to another user is reported as util.ErrSaleNotFound,
	// not as a permission error.
	GetSaleForUpdate(ctx context.Context, q DBExecutor, saleID, userID int64) (*domain.Sale, error)
	// ListPurchasesByUser retrieves the user's sales joined with product titles.
	ListPurchasesByUser(ctx context.Context, q DBExecutor, userID int64) ([]domain.PurchaseRecord, error)
	// DeleteSale removes a sale record.
	DeleteSale(ctx context.Context, q DBExecutor, saleID int64) error
}
