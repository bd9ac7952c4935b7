// internal/service/checkout_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/util"
	"storefront/pkg/db"
)

// CheckoutService defines the purchase and return workflows.
type CheckoutService interface {
	// Purchase converts the user's cart into committed sales, one receipt
	// and decremented stock, debiting the wallet. It returns the charged
	// total. Nothing is written when the wallet cannot cover the total.
	Purchase(ctx context.Context, userID int64) (decimal.Decimal, error)
	// Return reverses a single sale owned by the user: records a return,
	// restores stock and deletes the sale.
	Return(ctx context.Context, userID, saleID int64) error
	// ListPurchases retrieves the user's sales, the entry point for returns.
	ListPurchases(ctx context.Context, userID int64) ([]domain.PurchaseRecord, error)
}

// checkoutService implements the CheckoutService interface.
type checkoutService struct {
	dbBeginner  db.DBTxBeginner       // For starting transactions (e.g. *sqlx.DB)
	dbExecutor  repository.DBExecutor // For non-transactional reads (e.g. *sqlx.DB)
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	saleRepo    repository.SaleRepository
	receiptRepo repository.ReceiptRepository
	returnRepo  repository.ReturnRepository
	beginTx     db.BeginTxFunc
	commitTx    db.CommitTxFunc
	rollbackTx  db.RollbackTxFunc
}

// NewCheckoutService creates a new instance of CheckoutService.
func NewCheckoutService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	saleRepo repository.SaleRepository,
	receiptRepo repository.ReceiptRepository,
	returnRepo repository.ReturnRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) CheckoutService {
	return &checkoutService{
		dbBeginner:  dbBeginner,
		dbExecutor:  dbExecutor,
		userRepo:    userRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		saleRepo:    saleRepo,
		receiptRepo: receiptRepo,
		returnRepo:  returnRepo,
		beginTx:     beginTx,
		commitTx:    commitTx,
		rollbackTx:  rollbackTx,
	}
}

// Purchase runs the whole checkout as one transaction. The wallet row is
// locked before anything else is read, so a concurrent purchase by the same
// user waits here and then sees the committed state: an already-consumed
// cart reads as empty instead of being charged twice. Either every write
// commits or none do.
func (s *checkoutService) Purchase(ctx context.Context, userID int64) (decimal.Decimal, error) {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return decimal.Zero, fmt.Errorf("purchase: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return decimal.Zero, fmt.Errorf("purchase: transaction controller does not implement DBExecutor")
	}

	wallet, err := s.userRepo.GetWalletForUpdate(ctx, txExecutor, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("purchase: failed to load wallet for user %d: %w", userID, err)
	}

	items, err := s.cartRepo.ListItems(ctx, txExecutor, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("purchase: failed to load cart for user %d: %w", userID, err)
	}
	if len(items) == 0 {
		return decimal.Zero, util.ErrEmptyCart
	}

	// Total comes from live catalog prices, never from client-side values.
	total := domain.CartTotal(items)
	if wallet.LessThan(total) {
		return decimal.Zero, util.ErrInsufficientFunds
	}

	if err := s.userRepo.DebitWallet(ctx, txExecutor, userID, total); err != nil {
		return decimal.Zero, fmt.Errorf("purchase: failed to debit wallet: %w", err)
	}

	orderDate := time.Now().UTC()
	for _, item := range items {
		sale := domain.NewSale(userID, item, orderDate)
		if err := s.saleRepo.CreateSale(ctx, txExecutor, sale); err != nil {
			return decimal.Zero, fmt.Errorf("purchase: failed to record sale for product %d: %w", item.ProductID, err)
		}
		if err := s.productRepo.DecrementStock(ctx, txExecutor, item.ProductID, item.Quantity); err != nil {
			if util.IsError(err, util.ErrOutOfStock) {
				return decimal.Zero, fmt.Errorf("purchase: product %d: %w", item.ProductID, util.ErrOutOfStock)
			}
			return decimal.Zero, fmt.Errorf("purchase: failed to decrement stock for product %d: %w", item.ProductID, err)
		}
	}

	receipt := &domain.Receipt{UserID: userID, Amount: total}
	if err := s.receiptRepo.CreateReceipt(ctx, txExecutor, receipt); err != nil {
		return decimal.Zero, fmt.Errorf("purchase: failed to create receipt: %w", err)
	}

	if err := s.cartRepo.ClearCart(ctx, txExecutor, userID); err != nil {
		return decimal.Zero, fmt.Errorf("purchase: failed to clear cart for user %d: %w", userID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return decimal.Zero, fmt.Errorf("purchase: failed to commit transaction: %w", err)
	}

	return total, nil
}

// Return reverses one sale inside a single transaction. The sale row is
// locked so a second return of the same sale observes the deletion.
func (s *checkoutService) Return(ctx context.Context, userID, saleID int64) error {
	txController, err := s.beginTx(ctx, s.dbBeginner)
	if err != nil {
		return fmt.Errorf("return: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("return: transaction controller does not implement DBExecutor")
	}

	sale, err := s.saleRepo.GetSaleForUpdate(ctx, txExecutor, saleID, userID)
	if err != nil {
		if util.IsError(err, util.ErrSaleNotFound) {
			return util.ErrSaleNotFound
		}
		return fmt.Errorf("return: failed to load sale %d: %w", saleID, err)
	}

	ret := domain.NewReturn(sale, time.Now().UTC())
	if err := s.returnRepo.CreateReturn(ctx, txExecutor, ret); err != nil {
		return fmt.Errorf("return: failed to record return for sale %d: %w", saleID, err)
	}

	if err := s.productRepo.IncrementStock(ctx, txExecutor, sale.ProductID, sale.Quantity); err != nil {
		return fmt.Errorf("return: failed to restore stock for product %d: %w", sale.ProductID, err)
	}

	if err := s.saleRepo.DeleteSale(ctx, txExecutor, saleID); err != nil {
		return fmt.Errorf("return: failed to delete sale %d: %w", saleID, err)
	}

	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("return: failed to commit transaction: %w", err)
	}

	return nil
}

// ListPurchases retrieves the user's sales joined with product titles.
func (s *checkoutService) ListPurchases(ctx context.Context, userID int64) ([]domain.PurchaseRecord, error) {
	purchases, err := s.saleRepo.ListPurchasesByUser(ctx, s.dbExecutor, userID)
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}
