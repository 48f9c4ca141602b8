package markings

import (
	"context"

	"stockmark/internal/core/id"
)

// Repository defines the interface for Marking persistence.
//
// Attach/Detach are the write-off primitives. AttachToOutcome is a
// conditional bulk update (only rows with a null outcome reference are
// touched) and reports how many rows it actually claimed; callers
// compare that count to the request size to detect concurrent
// write-offs.
type Repository interface {
	// CreateBatch inserts markings in bulk. The global uniqueness of
	// the marking string is enforced by the store.
	CreateBatch(ctx context.Context, items []*Marking) error

	// GetByID retrieves a marking by id.
	GetByID(ctx context.Context, markingID id.ID) (*Marking, error)

	// GetByIDs retrieves markings by id, in no particular order.
	// Missing ids are silently absent from the result.
	GetByIDs(ctx context.Context, ids []id.ID) ([]*Marking, error)

	// Update persists field changes on a single marking with an
	// optimistic version check.
	Update(ctx context.Context, m *Marking) error

	// Delete removes a single marking.
	Delete(ctx context.Context, markingID id.ID) error

	// ExistingStrings returns which of the given marking values are
	// already present in the store, regardless of owning document.
	ExistingStrings(ctx context.Context, values []string) ([]string, error)

	// ListByIncome retrieves all markings of an income document.
	ListByIncome(ctx context.Context, incomeID id.ID) ([]*Marking, error)

	// ListByOutcome retrieves all markings written off by an outcome.
	ListByOutcome(ctx context.Context, outcomeID id.ID) ([]*Marking, error)

	// DeleteByIncome removes all markings of an income document.
	DeleteByIncome(ctx context.Context, incomeID id.ID) (int64, error)

	// DeleteByIncomeAndStrings removes the named markings of an income
	// document.
	DeleteByIncomeAndStrings(ctx context.Context, incomeID id.ID, values []string) (int64, error)

	// WrittenOffStrings returns which of the given values belong to the
	// income and are already written off.
	WrittenOffStrings(ctx context.Context, incomeID id.ID, values []string) ([]string, error)

	// HasWrittenOffByIncome reports whether any marking of the income
	// is written off.
	HasWrittenOffByIncome(ctx context.Context, incomeID id.ID) (bool, error)

	// AttachToOutcome sets the outcome reference on the given markings
	// where it is currently null, returning the number of rows claimed.
	AttachToOutcome(ctx context.Context, outcomeID id.ID, ids []id.ID) (int64, error)

	// DetachFromOutcome clears the outcome reference on the given
	// markings where it currently equals outcomeID.
	DetachFromOutcome(ctx context.Context, outcomeID id.ID, ids []id.ID) (int64, error)

	// DetachAll clears the outcome reference on every marking written
	// off by the outcome.
	DetachAll(ctx context.Context, outcomeID id.ID) (int64, error)

	// ListConflicting returns markings from the given set that are
	// written off by a different outcome than outcomeID. Used to build
	// error details before and after a failed conditional attach.
	ListConflicting(ctx context.Context, ids []id.ID, outcomeID id.ID) ([]*Marking, error)
}
