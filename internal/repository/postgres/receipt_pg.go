// internal/repository/postgres/receipt_pg.go
package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// ReceiptRepository implements repository.ReceiptRepository for PostgreSQL.
type ReceiptRepository struct{}

// NewReceiptRepository creates a new ReceiptRepository.
func NewReceiptRepository(db *sqlx.DB) repository.ReceiptRepository {
	return &ReceiptRepository{}
}

// CreateReceipt inserts the receipt for one completed purchase.
func (r *ReceiptRepository) CreateReceipt(ctx context.Context, q repository.DBExecutor, receipt *domain.Receipt) error {
	query := `INSERT INTO receipts (user_id, amount) VALUES ($1, $2) RETURNING id`
	err := q.QueryRowContext(ctx, query, receipt.UserID, receipt.Amount).Scan(&receipt.ID)
	if err != nil {
		return fmt.Errorf("failed to create receipt: %w", err)
	}
	return nil
}
