// internal/repository/postgres/sale_pg.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/util"
)

// SaleRepository implements repository.SaleRepository for PostgreSQL.
type SaleRepository struct{}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(db *sqlx.DB) repository.SaleRepository {
	return &SaleRepository{}
}

// CreateSale inserts a new sale record using the provided DBExecutor.
func (r *SaleRepository) CreateSale(ctx context.Context, q repository.DBExecutor, sale *domain.Sale) error {
	query := `INSERT INTO sales (user_id, product_id, quantity, order_date, store_id)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		sale.UserID,
		sale.ProductID,
		sale.Quantity,
		sale.OrderDate,
		sale.StoreID,
	).Scan(&sale.ID)
	if err != nil {
		return fmt.Errorf("failed to create sale: %w", err)
	}
	return nil
}

// GetSaleForUpdate retrieves a sale by ID and owner under FOR UPDATE so two
// concurrent returns of the same sale serialize. A sale owned by another
// user looks identical to a missing one.
func (r *SaleRepository) GetSaleForUpdate(ctx context.Context, q repository.DBExecutor, saleID, userID int64) (*domain.Sale, error) {
	var sale domain.Sale
	query := `SELECT id, user_id, product_id, quantity, order_date, store_id
              FROM sales WHERE id = $1 AND user_id = $2 FOR UPDATE`
	err := q.GetContext(ctx, &sale, query, saleID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to lock sale %d for user %d: %w", saleID, userID, err)
	}
	return &sale, nil
}

// ListPurchasesByUser retrieves the user's sales joined with product titles.
func (r *SaleRepository) ListPurchasesByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.PurchaseRecord, error) {
	purchases := []domain.PurchaseRecord{}
	query := `
		SELECT s.id AS sale_id, p.title, s.quantity, s.order_date
		FROM sales s
		JOIN products p ON s.product_id = p.id
		WHERE s.user_id = $1
		ORDER BY s.order_date DESC, s.id DESC`
	if err := q.SelectContext(ctx, &purchases, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list purchases for user %d: %w", userID, err)
	}
	return purchases, nil
}

// DeleteSale removes a sale record.
func (r *SaleRepository) DeleteSale(ctx context.Context, q repository.DBExecutor, saleID int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, saleID)
	if err != nil {
		return fmt.Errorf("failed to delete sale %d: %w", saleID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting sale %d: %w", saleID, err)
	}
	if rowsAffected == 0 {
		return util.ErrSaleNotFound
	}
	return nil
}
