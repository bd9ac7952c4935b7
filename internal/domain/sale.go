// internal/domain/sale.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records one purchased cart line. It is deleted again when the
// shopper returns the item; the Return row is the durable trace.
type Sale struct {
	ID        int64     `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	UserID    int64     `db:"user_id" json:"user_id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	OrderDate time.Time `db:"order_date" json:"order_date"`
	StoreID   *int64    `db:"store_id" json:"store_id,omitempty"`
}

// NewSale creates a Sale for one cart item at purchase time.
func NewSale(userID int64, item CartItem, orderDate time.Time) *Sale {
	return &Sale{
		UserID:    userID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		OrderDate: orderDate,
		StoreID:   item.StoreID,
	}
}

// PurchaseRecord is a sale joined with its product title, shown on the
// purchase history page where returns are initiated.
type PurchaseRecord struct {
	SaleID    int64     `db:"sale_id" json:"sale_id"`
	Title     string    `db:"title" json:"title"`
	Quantity  int       `db:"quantity" json:"quantity"`
	OrderDate time.Time `db:"order_date" json:"order_date"`
}

// Receipt records the total amount charged for one completed purchase.
type Receipt struct {
	ID     int64           `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	UserID int64           `db:"user_id" json:"user_id"`
	Amount decimal.Decimal `db:"amount" json:"amount"` // Sum of sale totals, NUMERIC(20, 2) in DB
}

// Return records a reversed sale.
type Return struct {
	ID         int64     `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	UserID     int64     `db:"user_id" json:"user_id"`
	ProductID  int64     `db:"product_id" json:"product_id"`
	Quantity   int       `db:"quantity" json:"quantity"`
	ReturnDate time.Time `db:"return_date" json:"return_date"`
}

// NewReturn creates a Return reversing the given sale.
func NewReturn(sale *Sale, returnDate time.Time) *Return {
	return &Return{
		UserID:     sale.UserID,
		ProductID:  sale.ProductID,
		Quantity:   sale.Quantity,
		ReturnDate: returnDate,
	}
}
