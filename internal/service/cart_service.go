// internal/service/cart_service.go
package service

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/util"
)

// CartService defines cart-related business logic.
type CartService interface {
	// AddToCart puts one unit of a product into the user's cart, bumping
	// the quantity when a line for that product already exists. Stock is
	// not checked here; it is validated at purchase time.
	AddToCart(ctx context.Context, userID, productID int64) error
	// ViewCart returns the user's cart lines with line totals, their wallet
	// balance and the grand total rounded to 2 decimals for display.
	ViewCart(ctx context.Context, userID int64) (*domain.CartView, error)
}

// cartService implements the CartService interface.
type cartService struct {
	dbExecutor  repository.DBExecutor
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
}

// NewCartService creates a new instance of CartService.
func NewCartService(
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
) CartService {
	return &cartService{
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
	}
}

// AddToCart upserts a cart line for the product. The upsert is a single
// statement, so no explicit transaction is needed.
func (s *cartService) AddToCart(ctx context.Context, userID, productID int64) error {
	if _, err := s.productRepo.GetProductByID(ctx, s.dbExecutor, productID); err != nil {
		if util.IsError(err, util.ErrProductNotFound) {
			return util.ErrProductNotFound
		}
		return fmt.Errorf("add to cart: failed to check product %d: %w", productID, err)
	}

	if err := s.cartRepo.UpsertLine(ctx, s.dbExecutor, userID, productID); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

// ViewCart is a pure read: joined lines, wallet balance and grand total.
func (s *cartService) ViewCart(ctx context.Context, userID int64) (*domain.CartView, error) {
	items, err := s.cartRepo.ListItems(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("view cart: failed to list items for user %d: %w", userID, err)
	}

	user, err := s.userRepo.GetUserByID(ctx, s.dbExecutor, userID)
	if err != nil {
		if util.IsError(err, util.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, fmt.Errorf("view cart: failed to get user %d: %w", userID, err)
	}

	return &domain.CartView{
		Items:  items,
		Wallet: user.Wallet,
		Total:  domain.CartTotal(items).Round(2),
	}, nil
}
