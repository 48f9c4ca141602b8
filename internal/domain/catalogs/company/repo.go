package company

import (
	"context"

	"stockmark/internal/core/id"
	"stockmark/internal/domain"
)

// Repository defines the interface for Company persistence.
type Repository interface {
	// UpsertByINN inserts the company or, on INN conflict, overwrites
	// name and phone of the existing row. Returns the stored row.
	UpsertByINN(ctx context.Context, c *Company) (*Company, error)

	// FindByNamePhone retrieves a company by exact (name, phone) pair.
	FindByNamePhone(ctx context.Context, name, phone string) (*Company, error)

	// Create inserts a new company.
	Create(ctx context.Context, c *Company) error

	// GetByID retrieves a company by id.
	GetByID(ctx context.Context, companyID id.ID) (*Company, error)

	// List retrieves companies with filtering and pagination.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Company], error)
}
