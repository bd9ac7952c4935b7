// internal/domain/product.go
package domain

import (
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Product represents a catalog item available for purchase.
type Product struct {
	ID      int64           `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	Title   string          `db:"title" json:"title"`
	Price   decimal.Decimal `db:"price" json:"price"` // NUMERIC(20, 2) in DB, never negative
	Stock   int             `db:"stock" json:"stock"` // Units on hand, never negative
	Img     string          `db:"img" json:"img"`     // Image URL shown on listing pages
	StoreID *int64          `db:"store_id" json:"store_id,omitempty"` // Optional owning store
}
