// Package outcome provides the goods issue document. An outcome never
// creates markings; it claims existing in-stock markings by id, which
// is what writes them off.
package outcome

import (
	"context"
	"time"

	"stockmark/internal/core/entity"
	"stockmark/internal/core/id"
	"stockmark/internal/domain/catalogs/company"
	"stockmark/internal/domain/markings"
)

// Outcome represents a goods issue to a customer company.
type Outcome struct {
	entity.Document

	// CompanyID is the customer the goods went to
	CompanyID id.ID `db:"to_company_id" json:"companyId"`
}

// New creates a live outcome document.
func New(companyID id.ID, addedBy string) *Outcome {
	return &Outcome{
		Document:  entity.NewDocument(addedBy),
		CompanyID: companyID,
	}
}

// Doc implements documents.Archivable.
func (o *Outcome) Doc() *entity.Document {
	return &o.Document
}

// Validate implements entity.Validatable.
func (o *Outcome) Validate(ctx context.Context) error {
	return o.Document.Validate(ctx)
}

// WithCompany is an outcome header joined with the customer name for
// listings.
type WithCompany struct {
	Outcome

	CompanyName string `db:"company_name" json:"companyName"`
}

// View is a fully hydrated outcome: header, customer and the markings
// it wrote off, grouped by product.
type View struct {
	*Outcome

	Company *company.Company        `json:"company"`
	Lines   []markings.ProductGroup `json:"lines"`
}

// Input carries the document payload for create and update. Markings
// are referenced by id; update reconciles the attachment set.
type Input struct {
	Company company.ResolveInput

	ContractDate   time.Time
	ContractNumber string
	InvoiceDate    time.Time
	InvoiceNumber  string
	UnitOfMeasure  string
	Total          int64

	// MarkingIDs is the full desired attachment set. A nil pointer on
	// update means the field was absent from the request and the
	// current set stays untouched.
	MarkingIDs *[]id.ID
}
