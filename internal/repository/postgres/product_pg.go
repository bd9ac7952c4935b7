// internal/repository/postgres/product_pg.go
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

// ProductRepository implements repository.ProductRepository for PostgreSQL.
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &ProductRepository{}
}

// CreateProduct inserts a new product using the provided DBExecutor.
func (r *ProductRepository) CreateProduct(ctx context.Context, q repository.DBExecutor, product *domain.Product) error {
	query := `INSERT INTO products (title, price, stock, img, store_id)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		product.Title,
		product.Price,
		product.Stock,
		product.Img,
		product.StoreID,
	).Scan(&product.ID)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetProductByID retrieves a product by its ID using the provided DBExecutor.
func (r *ProductRepository) GetProductByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Product, error) {
	var product domain.Product
	query := `SELECT id, title, price, stock, img, store_id FROM products WHERE id = $1`
	err := q.GetContext(ctx, &product, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// ListProducts retrieves the full catalog ordered by ID.
func (r *ProductRepository) ListProducts(ctx context.Context, q repository.DBExecutor) ([]domain.Product, error) {
	products := []domain.Product{}
	query := `SELECT id, title, price, stock, img, store_id FROM products ORDER BY id`
	if err := q.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// UpdateProduct replaces the mutable fields of a product.
func (r *ProductRepository) UpdateProduct(ctx context.Context, q repository.DBExecutor, product *domain.Product) error {
	query := `UPDATE products SET title = $1, price = $2, stock = $3, img = $4 WHERE id = $5`
	result, err := q.ExecContext(ctx, query, product.Title, product.Price, product.Stock, product.Img, product.ID)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after updating product %d: %w", product.ID, err)
	}
	if rowsAffected == 0 {
		return util.ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product from the catalog.
func (r *ProductRepository) DeleteProduct(ctx context.Context, q repository.DBExecutor, id int64) error {
	result, err := q.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after deleting product %d: %w", id, err)
	}
	if rowsAffected == 0 {
		return util.ErrProductNotFound
	}
	return nil
}

// DecrementStock subtracts quantity from stock. The predicate keeps stock
// from ever going negative; zero rows affected means not enough units.
func (r *ProductRepository) DecrementStock(ctx context.Context, q repository.DBExecutor, productID int64, quantity int) error {
	query := `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`
	result, err := q.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to decrement stock for product %d: %w", productID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after decrementing stock for product %d: %w", productID, err)
	}
	if rowsAffected == 0 {
		return util.ErrOutOfStock
	}
	return nil
}

// IncrementStock adds quantity back to a product's stock.
func (r *ProductRepository) IncrementStock(ctx context.Context, q repository.DBExecutor, productID int64, quantity int) error {
	query := `UPDATE products SET stock = stock + $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, quantity, productID)
	if err != nil {
		return fmt.Errorf("failed to increment stock for product %d: %w", productID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after incrementing stock for product %d: %w", productID, err)
	}
	if rowsAffected == 0 {
		return util.ErrProductNotFound
	}
	return nil
}
