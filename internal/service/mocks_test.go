// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// MockDBExecutor is a mock implementation of repository.DBExecutor.
type MockDBExecutor struct {
	mock.Mock
}

func (m *MockDBExecutor) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	argsCalled := m.Called(ctx, dest, query, args)
	return argsCalled.Error(0)
}

func (m *MockDBExecutor) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	argsCalled := m.Called(ctx, query, args)
	return argsCalled.Get(0).(sql.Result), argsCalled.Error(1)
}

func (m *MockDBExecutor) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	m.Called(ctx, query, args)
	return &sql.Row{}
}

// MockTxController is a mock transaction controller. Embedding MockDBExecutor
// lets it satisfy repository.DBExecutor, mirroring how *sqlx.Tx does.
type MockTxController struct {
	mock.Mock
	MockDBExecutor
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, q repository.DBExecutor, user *domain.User) error {
	args := m.Called(ctx, q, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.User, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, q repository.DBExecutor, email string) (*domain.User, error) {
	args := m.Called(ctx, q, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetWalletForUpdate(ctx context.Context, q repository.DBExecutor, userID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, q, userID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockUserRepository) DebitWallet(ctx context.Context, q repository.DBExecutor, userID int64, amount decimal.Decimal) error {
	args := m.Called(ctx, q, userID, amount)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, q repository.DBExecutor, product *domain.Product) error {
	args := m.Called(ctx, q, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, q repository.DBExecutor, id int64) (*domain.Product, error) {
	args := m.Called(ctx, q, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, q repository.DBExecutor) ([]domain.Product, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, q repository.DBExecutor, product *domain.Product) error {
	args := m.Called(ctx, q, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, q repository.DBExecutor, id int64) error {
	args := m.Called(ctx, q, id)
	return args.Error(0)
}

func (m *MockProductRepository) DecrementStock(ctx context.Context, q repository.DBExecutor, productID int64, quantity int) error {
	args := m.Called(ctx, q, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementStock(ctx context.Context, q repository.DBExecutor, productID int64, quantity int) error {
	args := m.Called(ctx, q, productID, quantity)
	return args.Error(0)
}

// MockCartRepository is a mock implementation of repository.CartRepository.
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) UpsertLine(ctx context.Context, q repository.DBExecutor, userID, productID int64) error {
	args := m.Called(ctx, q, userID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) ListItems(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.CartItem, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartItem), args.Error(1)
}

func (m *MockCartRepository) ClearCart(ctx context.Context, q repository.DBExecutor, userID int64) error {
	args := m.Called(ctx, q, userID)
	return args.Error(0)
}

// MockSaleRepository is a mock implementation of repository.SaleRepository.
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateSale(ctx context.Context, q repository.DBExecutor, sale *domain.Sale) error {
	args := m.Called(ctx, q, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) GetSaleForUpdate(ctx context.Context, q repository.DBExecutor, saleID, userID int64) (*domain.Sale, error) {
	args := m.Called(ctx, q, saleID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) ListPurchasesByUser(ctx context.Context, q repository.DBExecutor, userID int64) ([]domain.PurchaseRecord, error) {
	args := m.Called(ctx, q, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseRecord), args.Error(1)
}

func (m *MockSaleRepository) DeleteSale(ctx context.Context, q repository.DBExecutor, saleID int64) error {
	args := m.Called(ctx, q, saleID)
	return args.Error(0)
}

// MockReceiptRepository is a mock implementation of repository.ReceiptRepository.
type MockReceiptRepository struct {
	mock.Mock
}

func (m *MockReceiptRepository) CreateReceipt(ctx context.Context, q repository.DBExecutor, receipt *domain.Receipt) error {
	args := m.Called(ctx, q, receipt)
	return args.Error(0)
}

// MockReturnRepository is a mock implementation of repository.ReturnRepository.
type MockReturnRepository struct {
	mock.Mock
}

func (m *MockReturnRepository) CreateReturn(ctx context.Context, q repository.DBExecutor, ret *domain.Return) error {
	args := m.Called(ctx, q, ret)
	return args.Error(0)
}
