package dto

import (
	"time"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/core/types"
	"stockmark/internal/domain/documents/outcome"
)

// SaveOutcomeRequest is the payload for outcome create and update.
// Markings are referenced by id; they must already exist in stock.
// Omitting markingIds on update leaves the attachment set untouched,
// which is why the field is a pointer: nil records absence, an empty
// array means "detach everything".
type SaveOutcomeRequest struct {
	Company        CompanyPayload `json:"company" binding:"required"`
	ContractDate   time.Time      `json:"contractDate" binding:"required"`
	ContractNumber string         `json:"contractNumber" binding:"required"`
	InvoiceDate    time.Time      `json:"invoiceDate" binding:"required"`
	InvoiceNumber  string         `json:"invoiceNumber" binding:"required"`
	UnitOfMeasure  string         `json:"unitOfMeasure"`
	Total          types.Money    `json:"total"`
	MarkingIDs     *[]string      `json:"markingIds"`
}

// ToInput converts to the domain input.
func (r SaveOutcomeRequest) ToInput() (outcome.Input, error) {
	in := outcome.Input{
		Company:        r.Company.ToResolveInput(),
		ContractDate:   r.ContractDate,
		ContractNumber: r.ContractNumber,
		InvoiceDate:    r.InvoiceDate,
		InvoiceNumber:  r.InvoiceNumber,
		UnitOfMeasure:  r.UnitOfMeasure,
		Total:          types.MoneyToMinor(r.Total),
	}

	if r.MarkingIDs != nil {
		ids := make([]id.ID, 0, len(*r.MarkingIDs))
		for _, raw := range *r.MarkingIDs {
			markingID, err := id.Parse(raw)
			if err != nil {
				return outcome.Input{}, apperror.NewValidation("invalid marking id").
					WithDetail("markingId", raw)
			}
			ids = append(ids, markingID)
		}
		in.MarkingIDs = &ids
	}

	return in, nil
}

// OutcomeResponse contains outcome header fields.
type OutcomeResponse struct {
	ID             string      `json:"id"`
	CompanyID      string      `json:"companyId"`
	ContractDate   time.Time   `json:"contractDate"`
	ContractNumber string      `json:"contractNumber"`
	InvoiceDate    time.Time   `json:"invoiceDate"`
	InvoiceNumber  string      `json:"invoiceNumber"`
	UnitOfMeasure  string      `json:"unitOfMeasure"`
	Total          types.Money `json:"total"`
	IsArchive      bool        `json:"isArchive"`
	ArchivedAt     *time.Time  `json:"archivedAt,omitempty"`
	ArchivedBy     *string     `json:"archivedBy,omitempty"`
	AddedBy        string      `json:"addedBy"`
	Version        int         `json:"version"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// FromOutcome creates OutcomeResponse from the domain entity.
func FromOutcome(doc *outcome.Outcome) OutcomeResponse {
	return OutcomeResponse{
		ID:             doc.ID.String(),
		CompanyID:      doc.CompanyID.String(),
		ContractDate:   doc.ContractDate,
		ContractNumber: doc.ContractNumber,
		InvoiceDate:    doc.InvoiceDate,
		InvoiceNumber:  doc.InvoiceNumber,
		UnitOfMeasure:  doc.UnitOfMeasure,
		Total:          types.MoneyFromMinor(doc.Total),
		IsArchive:      doc.IsArchive,
		ArchivedAt:     doc.ArchivedAt,
		ArchivedBy:     doc.ArchivedBy,
		AddedBy:        doc.AddedBy,
		Version:        doc.Version,
		CreatedAt:      doc.CreatedAt,
		UpdatedAt:      doc.UpdatedAt,
	}
}

// OutcomeListItem is an outcome header with the customer name.
type OutcomeListItem struct {
	OutcomeResponse

	CompanyName string `json:"companyName"`
}

// FromOutcomeWithCompany creates the listing row response.
func FromOutcomeWithCompany(doc *outcome.WithCompany) OutcomeListItem {
	return OutcomeListItem{
		OutcomeResponse: FromOutcome(&doc.Outcome),
		CompanyName:     doc.CompanyName,
	}
}

// OutcomeViewResponse is the hydrated document.
type OutcomeViewResponse struct {
	OutcomeResponse

	Company CompanyResponse `json:"company"`
	Lines   []LineResponse  `json:"lines"`
}

// FromOutcomeView creates the hydrated response.
func FromOutcomeView(v *outcome.View) OutcomeViewResponse {
	return OutcomeViewResponse{
		OutcomeResponse: FromOutcome(v.Outcome),
		Company:         FromCompany(v.Company),
		Lines:           FromProductGroups(v.Lines),
	}
}
