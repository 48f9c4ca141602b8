// Package documents holds behavior shared by the Income and Outcome
// document types, chiefly the archival state machine that gates
// mutation and deletion.
package documents

import (
	"context"

	"stockmark/internal/core/apperror"
	appcontext "stockmark/internal/core/context"
	"stockmark/internal/core/entity"
	"stockmark/internal/core/id"
	"stockmark/internal/core/tx"
	"stockmark/internal/domain/audit"
	"stockmark/pkg/logger"
)

// Archivable is a document that carries archival state.
type Archivable interface {
	Doc() *entity.Document
}

// Store is the persistence surface the archive machine needs from a
// document repository.
type Store[T Archivable] interface {
	// GetByID retrieves a document by id.
	GetByID(ctx context.Context, docID id.ID) (T, error)

	// SetArchive persists the archival fields with an optimistic
	// version check.
	SetArchive(ctx context.Context, doc T) error

	// Delete removes the document row.
	Delete(ctx context.Context, docID id.ID) error
}

// BeforeDelete runs inside the delete transaction before the document
// row is removed. Document types use it to validate and cascade over
// their markings.
type BeforeDelete[T Archivable] func(ctx context.Context, doc T) error

// Machine drives the active -> archived -> deleted lifecycle shared by
// both document types.
//
// Archive and unarchive are idempotent; deletion requires the archived
// state, and archived documents reject every other mutation. Deletion
// is permanent.
type Machine[T Archivable] struct {
	entityType   string
	store        Store[T]
	auditor      audit.Recorder
	txm          tx.Manager
	beforeDelete BeforeDelete[T]
}

// NewMachine creates an archive machine for one document type.
// beforeDelete may be nil.
func NewMachine[T Archivable](entityType string, store Store[T], auditor audit.Recorder, txm tx.Manager, beforeDelete BeforeDelete[T]) *Machine[T] {
	return &Machine[T]{
		entityType:   entityType,
		store:        store,
		auditor:      auditor,
		txm:          txm,
		beforeDelete: beforeDelete,
	}
}

// Archive transitions an active document to archived, stamping the
// archival time and the acting user. Archiving an already archived
// document is a no-op that keeps the original stamps.
func (m *Machine[T]) Archive(ctx context.Context, docID id.ID) (T, error) {
	var zero T

	doc, err := m.store.GetByID(ctx, docID)
	if err != nil {
		return zero, err
	}
	if doc.Doc().Archived() {
		return doc, nil
	}

	doc.Doc().MarkArchived(appcontext.GetUsername(ctx))

	err = m.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := m.store.SetArchive(ctx, doc); err != nil {
			return err
		}
		return m.auditor.Record(ctx, m.entityType, docID, audit.ActionArchive, nil)
	})
	if err != nil {
		return zero, err
	}

	logger.Info(ctx, "document archived", "type", m.entityType, "id", docID)
	return doc, nil
}

// Unarchive transitions an archived document back to active, clearing
// the archival stamps. Unarchiving a live document is a no-op.
func (m *Machine[T]) Unarchive(ctx context.Context, docID id.ID) (T, error) {
	var zero T

	doc, err := m.store.GetByID(ctx, docID)
	if err != nil {
		return zero, err
	}
	if !doc.Doc().Archived() {
		return doc, nil
	}

	doc.Doc().MarkUnarchived()

	err = m.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := m.store.SetArchive(ctx, doc); err != nil {
			return err
		}
		return m.auditor.Record(ctx, m.entityType, docID, audit.ActionUnarchive, nil)
	})
	if err != nil {
		return zero, err
	}

	logger.Info(ctx, "document unarchived", "type", m.entityType, "id", docID)
	return doc, nil
}

// Delete permanently removes an archived document. The beforeDelete
// hook and the row removal share one transaction, so a hook failure
// leaves the document and its markings untouched.
func (m *Machine[T]) Delete(ctx context.Context, docID id.ID) error {
	doc, err := m.store.GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if !doc.Doc().Archived() {
		return apperror.NewNotArchived(m.entityType, docID.String())
	}

	err = m.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if m.beforeDelete != nil {
			if err := m.beforeDelete(ctx, doc); err != nil {
				return err
			}
		}
		if err := m.store.Delete(ctx, docID); err != nil {
			return err
		}
		return m.auditor.Record(ctx, m.entityType, docID, audit.ActionDelete, nil)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "document deleted", "type", m.entityType, "id", docID)
	return nil
}

// EnsureEditable fetches the document and rejects archived ones.
// Update paths call this before touching any state.
func (m *Machine[T]) EnsureEditable(ctx context.Context, docID id.ID) (T, error) {
	var zero T

	doc, err := m.store.GetByID(ctx, docID)
	if err != nil {
		return zero, err
	}
	if doc.Doc().Archived() {
		return zero, apperror.NewArchivedDocument(m.entityType, docID.String())
	}
	return doc, nil
}
