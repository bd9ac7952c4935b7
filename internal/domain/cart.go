// internal/domain/cart.go
package domain

import (
	"github.com/shopspring/decimal"
)

// CartLine is one (user, product) entry in a shopping cart.
// The pair is unique; adding the same product again bumps Quantity.
type CartLine struct {
	UserID    int64 `db:"user_id" json:"user_id"`
	ProductID int64 `db:"product_id" json:"product_id"`
	Quantity  int   `db:"quantity" json:"quantity"` // Always >= 1
}

// CartItem is a cart line joined with the current product record.
// Price and StoreID reflect the catalog at read time, not values cached
// when the line was added.
type CartItem struct {
	ProductID int64           `db:"product_id" json:"product_id"`
	Title     string          `db:"title" json:"title"`
	Price     decimal.Decimal `db:"price" json:"price"`
	StoreID   *int64          `db:"store_id" json:"store_id,omitempty"`
	Quantity  int             `db:"quantity" json:"quantity"`
}

// LineTotal returns price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartView is what a shopper sees on the cart page: the joined lines,
// their wallet balance, and the grand total.
type CartView struct {
	Items  []CartItem      `json:"items"`
	Wallet decimal.Decimal `json:"wallet"`
	Total  decimal.Decimal `json:"total"`
}

// CartTotal sums the line totals of the given items.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
