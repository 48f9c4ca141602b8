package entity

import (
	"context"
	"time"

	"stockmark/internal/core/apperror"
)

// Document is the base type for warehouse documents (Income, Outcome).
// It carries the shared contract/invoice fields and the archive state
// that freezes a document.
type Document struct {
	BaseEntity

	// Contract reference
	ContractDate   time.Time `db:"contract_date" json:"contractDate"`
	ContractNumber string    `db:"contract_number" json:"contractNumber"`

	// Invoice reference
	InvoiceDate   time.Time `db:"invoice_date" json:"invoiceDate"`
	InvoiceNumber string    `db:"invoice_number" json:"invoiceNumber"`

	// UnitOfMeasure is the unit the totals are expressed in
	UnitOfMeasure string `db:"unit_of_measure" json:"unitOfMeasure"`

	// Total in minor units
	Total int64 `db:"total" json:"total"`

	// Archive state. While IsArchive is true the document and its
	// markings are read-only; only an archived document may be deleted.
	IsArchive  bool       `db:"is_archive" json:"isArchive"`
	ArchivedAt *time.Time `db:"archived_at" json:"archivedAt,omitempty"`
	ArchivedBy *string    `db:"archived_by" json:"archivedBy,omitempty"`

	// AddedBy is the user who created the document
	AddedBy string `db:"added_by" json:"addedBy"`
}

// NewDocument creates a new live document with generated ID.
func NewDocument(addedBy string) Document {
	return Document{
		BaseEntity: NewBaseEntity(),
		AddedBy:    addedBy,
	}
}

// Archived reports the archive state.
func (d *Document) Archived() bool {
	return d.IsArchive
}

// MarkArchived freezes the document, stamping who and when.
func (d *Document) MarkArchived(by string) {
	now := time.Now().UTC()
	d.IsArchive = true
	d.ArchivedAt = &now
	d.ArchivedBy = &by
	d.Touch()
}

// MarkUnarchived returns the document to the live state.
func (d *Document) MarkUnarchived() {
	d.IsArchive = false
	d.ArchivedAt = nil
	d.ArchivedBy = nil
	d.Touch()
}

// Validate implements Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if d.ContractNumber == "" {
		return apperror.NewValidation("contract number is required").
			WithDetail("field", "contractNumber")
	}
	if d.ContractDate.IsZero() {
		return apperror.NewValidation("contract date is required").
			WithDetail("field", "contractDate")
	}
	if d.InvoiceNumber == "" {
		return apperror.NewValidation("invoice number is required").
			WithDetail("field", "invoiceNumber")
	}
	if d.InvoiceDate.IsZero() {
		return apperror.NewValidation("invoice date is required").
			WithDetail("field", "invoiceDate")
	}
	if d.Total < 0 {
		return apperror.NewValidation("total must not be negative").
			WithDetail("field", "total")
	}
	return nil
}
