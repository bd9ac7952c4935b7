// internal/repository/cart_repo.go
package repository

import (
	"context"

	"storefront/internal/domain"
)

// CartRepository defines the interface for cart data operations.
type CartRepository interface {
	// UpsertLine inserts a cart line with quantity 1, or increments the
	// quantity by 1 when the (user, product) line already exists.
	UpsertLine(ctx context.Context, q DBExecutor, userID, productID int64) error
	// ListItems retrieves the user's cart lines joined with current product
	// price, title and store reference.
	ListItems(ctx context.Context, q DBExecutor, userID int64) ([]domain.CartItem, error)
	// ClearCart deletes all cart lines for the user.
	ClearCart(ctx context.Context, q DBExecutor, userID int64) error
}
