package outcome

import (
	"context"

	"stockmark/internal/core/id"
	"stockmark/internal/domain"
)

// Repository defines the interface for Outcome persistence.
// GetByID/SetArchive/Delete double as the archive machine store.
type Repository interface {
	// Create inserts a new outcome header.
	Create(ctx context.Context, doc *Outcome) error

	// GetByID retrieves an outcome by id.
	GetByID(ctx context.Context, docID id.ID) (*Outcome, error)

	// Update persists header changes with an optimistic version check.
	Update(ctx context.Context, doc *Outcome) error

	// SetArchive persists the archival fields with an optimistic
	// version check.
	SetArchive(ctx context.Context, doc *Outcome) error

	// Delete removes the outcome row.
	Delete(ctx context.Context, docID id.ID) error

	// List retrieves outcome headers joined with the customer name.
	List(ctx context.Context, filter domain.DocumentFilter) (domain.ListResult[*WithCompany], error)
}
