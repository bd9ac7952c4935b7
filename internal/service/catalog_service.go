// internal/service/catalog_service.go
package service

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
	"storefront/internal/util"
)

// CatalogService defines product listing and admin inventory management.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, product *domain.Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// catalogService implements the CatalogService interface.
type catalogService struct {
	dbExecutor  repository.DBExecutor
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService.
func NewCatalogService(dbExecutor repository.DBExecutor, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		dbExecutor:  dbExecutor,
		productRepo: productRepo,
	}
}

func validateProduct(product *domain.Product) error {
	if product.Title == "" || product.Img == "" {
		return util.ErrInvalidInput
	}
	if product.Price.IsNegative() || product.Stock < 0 {
		return util.ErrInvalidInput
	}
	return nil
}

// ListProducts retrieves the full catalog.
func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, s.dbExecutor)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct retrieves one product by ID.
func (s *catalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.GetProductByID(ctx, s.dbExecutor, id)
	if err != nil {
		if util.IsError(err, util.ErrProductNotFound) {
			return nil, util.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

// CreateProduct validates and inserts a new catalog item.
func (s *catalogService) CreateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.productRepo.CreateProduct(ctx, s.dbExecutor, product); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct validates and replaces a product's mutable fields.
func (s *catalogService) UpdateProduct(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.productRepo.UpdateProduct(ctx, s.dbExecutor, product); err != nil {
		if util.IsError(err, util.ErrProductNotFound) {
			return util.ErrProductNotFound
		}
		return fmt.Errorf("update product %d: %w", product.ID, err)
	}
	return nil
}

// DeleteProduct removes a product from the catalog.
func (s *catalogService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.productRepo.DeleteProduct(ctx, s.dbExecutor, id); err != nil {
		if util.IsError(err, util.ErrProductNotFound) {
			return util.ErrProductNotFound
		}
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
