// internal/repository/postgres/user_pg.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/util"
)

// UserRepository implements repository.UserRepository for PostgreSQL.
type UserRepository struct {
	// Stateless; methods receive a DBExecutor directly so they run equally
	// on a plain connection or inside a transaction.
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// CreateUser inserts a new user into the database using the provided DBExecutor.
func (r *UserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	query := `INSERT INTO users (country, name, email, password, role, wallet)
              VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		user.Country,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Wallet,
	).Scan(&user.ID)
	if err != nil {
		// Two signups can race past the read-side uniqueness check; the
		// users.email constraint settles it here.
		if isUniqueViolation(err) {
			return util.ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// GetUserByID retrieves a user by their ID using the provided DBExecutor.
func (r *UserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, country, name, email, password, role, wallet FROM users WHERE id = $1`
	err := q.GetContext(ctx, &user, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID %d: %w", id, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email using the provided DBExecutor.
func (r *UserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT id, country, name, email, password, role, wallet FROM users WHERE email = $1`
	err := q.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email '%s': %w", email, err)
	}
	return &user, nil
}

// GetWalletForUpdate reads the wallet balance under FOR UPDATE so the
// check-then-debit sequence cannot interleave with a concurrent purchase.
func (r *UserRepository) GetWalletForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	var wallet decimal.Decimal
	query := `SELECT wallet FROM users WHERE id = $1 FOR UPDATE`
	err := q.GetContext(ctx, &wallet, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return decimal.Zero, util.ErrUserNotFound
		}
		return decimal.Zero, fmt.Errorf("failed to lock wallet for user %d: %w", userID, err)
	}
	return wallet, nil
}

// DebitWallet subtracts amount from the user's wallet balance.
func (r *UserRepository) DebitWallet(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) error {
	query := `UPDATE users SET wallet = wallet - $1 WHERE id = $2`
	result, err := q.ExecContext(ctx, query, amount, userID)
	if err != nil {
		return fmt.Errorf("failed to debit wallet for user %d: %w", userID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected after debiting wallet for user %d: %w", userID, err)
	}
	if rowsAffected == 0 {
		return util.ErrUserNotFound
	}
	return nil
}
