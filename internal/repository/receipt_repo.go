// internal/repository/receipt_repo.go
package repository

import (
	"context"

	"storefront/internal/domain"
)

// ReceiptRepository defines the interface for receipt data operations.
type ReceiptRepository interface {
	// CreateReceipt adds the receipt for one completed purchase.
	CreateReceipt(ctx context.Context, q DBExecutor, receipt *domain.Receipt) error
}
