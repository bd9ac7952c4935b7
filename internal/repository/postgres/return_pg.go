// internal/repository/postgres/return_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ReturnRepository implements repository.ReturnRepository for PostgreSQL.
type ReturnRepository struct{}

// NewReturnRepository creates a new ReturnRepository.
func NewReturnRepository(db *sqlx.DB) repository.ReturnRepository {
	return &ReturnRepository{}
}

// CreateReturn inserts a return record. The sequence assigns the ID, so
// concurrent returns cannot collide.
func (r *ReturnRepository) CreateReturn(ctx context.Context, q repository.DBExecutor, ret *domain.Return) error {
	query := `INSERT INTO returns (user_id, product_id, quantity, return_date)
              VALUES ($1, $2, $3, $4) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		ret.UserID,
		ret.ProductID,
		ret.Quantity,
		ret.ReturnDate,
	).Scan(&ret.ID)
	if err != nil {
		return fmt.Errorf("failed to create return: %w", err)
	}
	return nil
}
