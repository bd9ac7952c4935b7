// internal/repository/return_repo.go
package repository

import (
	"context"

	"storefront/internal/domain"
)

// ReturnRepository defines the interface for return data operations.
type ReturnRepository interface {
	// CreateReturn adds a return record. The ID is assigned by the database
	// sequence, never computed client-side.
	CreateReturn(ctx context.Context, q DBExecutor, ret *domain.Return) error
}
