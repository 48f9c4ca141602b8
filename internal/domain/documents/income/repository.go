package income

import (
	"context"

	"stockmark/internal/core/id"
	"stockmark/internal/domain"
)

// Repository defines the interface for Income persistence.
// GetByID/SetArchive/Delete double as the archive machine store.
type Repository interface {
	// Create inserts a new income header.
	Create(ctx context.Context, doc *Income) error

	// GetByID retrieves an income by id.
	GetByID(ctx context.Context, docID id.ID) (*Income, error)

	// Update persists header changes with an optimistic version check.
	Update(ctx context.Context, doc *Income) error

	// SetArchive persists the archival fields with an optimistic
	// version check.
	SetArchive(ctx context.Context, doc *Income) error

	// Delete removes the income row.
	Delete(ctx context.Context, docID id.ID) error

	// List retrieves income headers joined with the supplier name.
	List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*WithCompany], error)

	// IsArchived reports the archive state without loading the row.
	// Satisfies markings.IncomeState.
	IsArchived(ctx context.Context, docID id.ID) (bool, error)
}
