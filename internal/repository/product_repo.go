// internal/repository/product_repo.go
package repository

import (
	"context"

	"storefront/internal/domain"
)

// ProductRepository defines the interface for catalog data operations.
type ProductRepository interface {
	// CreateProduct adds a new product to the catalog.
	CreateProduct(ctx context.Context, q DBExecutor, product *domain.Product) error
	// GetProductByID retrieves a product by its ID.
	GetProductByID(ctx context.Context, q DBExecutor, id int64) (*domain.Product, error)
	// ListProducts retrieves the full catalog ordered by ID.
	ListProducts(ctx context.Context, q DBExecutor) ([]domain.Product, error)
	// UpdateProduct replaces title, price, stock and image of a product.
	UpdateProduct(ctx context.Context, q DBExecutor, product *domain.Product) error
	// DeleteProduct removes a product from the catalog.
	DeleteProduct(ctx context.Context, q DBExecutor, id int64) error
	// DecrementStock subtracts quantity from a product's stock. It fails
	// with util.ErrOutOfStock when fewer than quantity units remain, leaving
	// the row untouched.
	DecrementStock(ctx context.Context, q DBExecutor, productID int64, quantity int) error
	// IncrementStock adds quantity back to a product's stock.
	IncrementStock(ctx context.Context, q DBExecutor, productID int64, quantity int) error
}
