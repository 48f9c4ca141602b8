package product

import (
	"context"

	"stockmark/internal/core/id"
	"stockmark/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	// Create inserts a new product.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product by id.
	GetByID(ctx context.Context, productID id.ID) (*Product, error)

	// List retrieves products without the stock aggregate. Lightweight
	// path for selection widgets.
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Product], error)

	// ListWithStock retrieves products with the stock count computed
	// per request via a conditional count join.
	ListWithStock(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*WithStock], error)

	// Stock returns the count of markings for the product with a null
	// outcome reference.
	Stock(ctx context.Context, productID id.ID) (int64, error)
}
