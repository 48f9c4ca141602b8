package product

import (
	"context"

	"stockmark/internal/core/id"
	"stockmark/internal/domain"
	"stockmark/pkg/logger"
)

// Service provides business logic for the Product catalog.
type Service struct {
	repo Repository
}

// NewService creates a new Product service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts a new product after validation.
func (s *Service) Create(ctx context.Context, p *Product) error {
	if err := p.Validate(ctx); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	logger.Info(ctx, "product created", "id", p.ID, "name", p.Name)
	return nil
}

// GetByID retrieves a product by id.
func (s *Service) GetByID(ctx context.Context, productID id.ID) (*Product, error) {
	return s.repo.GetByID(ctx, productID)
}

// List retrieves products without the stock aggregate.
func (s *Service) List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error) {
	return s.repo.List(ctx, filter)
}

// ListWithStock retrieves products with the live stock figure.
func (s *Service) ListWithStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*WithStock], error) {
	return s.repo.ListWithStock(ctx, filter)
}

// Stock returns the live stock figure for one product.
func (s *Service) Stock(ctx context.Context, productID id.ID) (int64, error) {
	// Verify the product exists so callers get NOT_FOUND, not zero.
	if _, err := s.repo.GetByID(ctx, productID); err != nil {
		return 0, err
	}
	return s.repo.Stock(ctx, productID)
}
