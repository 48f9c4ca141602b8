// Package income provides the goods receipt document. An income brings
// markings into existence: each of its line items carries the serial
// strings of the received units.
package income

import (
	"context"
	"time"

	"stockmark/internal/core/entity"
	"stockmark/internal/core/id"
	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/domain/markings"
)

// Income represents a goods receipt from a supplier company.
type Income struct {
	entity.Document

	// CompanyID is the supplier the goods came from
	CompanyID id.ID `db:"from_company_id" json:"companyId"`
}

// New creates a live income document.
func New(companyID id.ID, addedBy string) *Income {
	return &Income{
		Document:  entity.NewDocument(addedBy),
		CompanyID: companyID,
	}
}

// Doc implements documents.Archivable.
func (i *Income) Doc() *entity.Document {
	return &i.Document
}

// Validate implements entity.Validatable.
func (i *Income) Validate(ctx context.Context) error {
	return i.Document.Validate(ctx)
}

// WithCompany is an income header joined with the supplier name for
// listings.
type WithCompany struct {
	Income

	CompanyName string `db:"company_name" json:"companyName"`
}

// View is a fully hydrated income: header, supplier and line items.
type View struct {
	*Income

	Company *company.Company        `json:"company"`
	Lines   []markings.ProductGroup `json:"lines"`
}

// MarkingInput is one serial string arriving with a document.
type MarkingInput struct {
	Value   string
	Counter bool
}

// LineInput is the markings of one product arriving with a document.
type LineInput struct {
	ProductID id.ID
	Markings  []MarkingInput
}

// Input carries the document payload for create and update. Update
// reconciles the submitted lines against the stored markings instead
// of replacing them.
type Input struct {
	Company company.ResolveInput

	ContractDate   time.Time
	ContractNumber string
	InvoiceDate    time.Time
	InvoiceNumber  string
	UnitOfMeasure  string
	Total          int64

	// Lines is the full desired set of product lines. A nil pointer on
	// update means the field was absent from the request and the stored
	// markings stay untouched.
	Lines *[]LineInput
}
