// internal/domain/user.go
package domain

import (
	"github.com/shopspring/decimal" // For precise monetary calculations
)

// Role distinguishes regular shoppers from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// SignupBalance is the wallet balance granted to every new account.
var SignupBalance = decimal.NewFromFloat(100.00)

// User represents a registered shopper or administrator.
type User struct {
	ID           int64           `db:"id" json:"id"` // Primary key, BIGSERIAL in DB
	Country      string          `db:"country" json:"country"`
	Name         string          `db:"name" json:"name"`
	Email        string          `db:"email" json:"email"` // Unique
	PasswordHash string          `db:"password" json:"-"`  // bcrypt hash, never exposed
	Role         Role            `db:"role" json:"role"`
	Wallet       decimal.Decimal `db:"wallet" json:"wallet"` // Current balance, NUMERIC(20, 2) in DB
}

// NewUser creates a new User seeded with the signup wallet balance.
// An empty role defaults to RoleUser.
func NewUser(country, name, email, passwordHash string, role Role) *User {
	if role == "" {
		role = RoleUser
	}
	return &User{
		Country:      country,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Wallet:       SignupBalance,
	}
}
