// internal/repository/postgres/cart_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CartRepository implements repository.CartRepository for PostgreSQL.
type CartRepository struct{}

// NewCartRepository creates a new CartRepository.
func NewCartRepository(db *sqlx.DB) repository.CartRepository {
	return &CartRepository{}
}

// UpsertLine inserts a cart line or bumps its quantity by 1. The
// (user_id, product_id) unique constraint drives the conflict clause.
func (r *CartRepository) UpsertLine(ctx context.Context, q repository.DBExecutor, userID, productID int64) error {
	query := `INSERT INTO cart (user_id, product_id, quantity)
              VALUES ($1, $2, 1)
              ON CONFLICT (user_id, product_id)
              DO UPDATE SET quantity = cart.quantity + 1`
	if _, err := q.ExecContext(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("failed to upsert cart line for user %d, product %d: %w", userID, productID, err)
	}
	return nil
}

// ListItems retrieves the user's cart lines joined with current product data.
func (r *CartRepository) ListItems(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.CartItem, error) {
	items := []domain.CartItem{}
	query := `
		SELECT p.id AS product_id, p.title, p.price, p.store_id, c.quantity
		FROM cart c
		JOIN products p ON c.product_id = p.id
		WHERE c.user_id = $1
		ORDER BY p.id`
	if err := q.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list cart items for user %d: %w", userID, err)
	}
	return items, nil
}

// ClearCart deletes all cart lines for the user.
func (r *CartRepository) ClearCart(ctx context.Context, q repository.DBExecutor, userID int64) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM cart WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear cart for user %d: %w", userID, err)
	}
	return nil
}
