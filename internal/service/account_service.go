// internal/service/account_service.go
package service

import (
	"context"
	"fmt"

	"storefront/internal/auth"
	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/util"
	"storefront/pkg/db"
)

// AccountService defines signup, login and profile logic.
type AccountService interface {
	// SignUp registers a new user with the signup wallet balance.
	SignUp(ctx context.Context, country, name, email, password string, role domain.Role) (*domain.User, error)
	// Login verifies credentials and returns a signed session token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Profile retrieves the user's own account details.
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

// accountService implements the AccountService interface.
type accountService struct {
	dbBeginner db.DBTxBeginner
	dbExecutor repository.DBExecutor
	userRepo   repository.UserRepository
	tokens     *auth.TokenIssuer
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewAccountService creates a new instance of AccountService.
func NewAccountService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	tokens *auth.TokenIssuer,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) AccountService {
	return &accountService{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		userRepo:   userRepo,
		tokens:     tokens,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// SignUp registers a new user. The uniqueness check and insert run in one
// transaction so two signups with the same email cannot both pass the check.
func (s *accountService) SignUp(ctx context.Context, country, name, email, password string, role domain.Role) (*domain.User, error) {
	if country == "" || name == "" || email == "" || password == "" {
		return nil, util.ErrInvalidInput
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}

	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return nil, fmt.Errorf("signup: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return nil, fmt.Errorf("signup: transaction controller does not implement DBExecutor")
	}

	_, err = s.userRepo.GetUserByEmail(ctx, txExecutor, email)
	if err == nil {
		return nil, util.ErrDuplicateEmail
	}
	if !util.IsError(err, util.ErrNotFound) {
		return nil, fmt.Errorf("signup: failed to check existing email: %w", err)
	}

	user := domain.NewUser(country, name, email, hash, role)
	if err := s.userRepo.CreateUser(ctx, txExecutor, user); err != nil {
		// A concurrent signup may have won the race after our email check;
		// the insert then reports the duplicate.
		if util.IsError(err, util.ErrDuplicateEmail) {
			return nil, util.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("signup: failed to create user: %w", err)
	}

	if err := s.commitTx(txController); err != nil {
		return nil, fmt.Errorf("signup: failed to commit transaction: %w", err)
	}

	return user, nil
}

// Login verifies the password and issues a session token. A missing user
// and a wrong password produce the same error.
func (s *accountService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, util.ErrInvalidInput
	}

	user, err := s.userRepo.GetUserByEmail(ctx, s.dbExecutor, email)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return "", nil, util.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: failed to get user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, util.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}

	return token, user, nil
}

// Profile retrieves the user's own account details.
func (s *accountService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("profile: failed to get user %d: %w", userID, err)
	}
	return user, nil
}
