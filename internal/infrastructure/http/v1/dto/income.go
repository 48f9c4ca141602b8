package dto

import (
	"time"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
	"stockmark/internal/core/types"
	"stockmark/internal/domain/documents/income"
)

// IncomeLine is the markings of one product in a request.
type IncomeLine struct {
	ProductID string        `json:"productId" binding:"required,uuid"`
	Markings  []MarkingItem `json:"markings" binding:"required"`
}

// SaveIncomeRequest is the payload for income create and update.
// Omitting lines on update leaves the stored markings untouched,
// which is why the field is a pointer: nil records absence, an empty
// array means "remove every marking".
type SaveIncomeRequest struct {
	Company        CompanyPayload `json:"company" binding:"required"`
	ContractDate   time.Time      `json:"contractDate" binding:"required"`
	ContractNumber string         `json:"contractNumber" binding:"required"`
	InvoiceDate    time.Time      `json:"invoiceDate" binding:"required"`
	InvoiceNumber  string         `json:"invoiceNumber" binding:"required"`
	UnitOfMeasure  string         `json:"unitOfMeasure"`
	Total          types.Money    `json:"total"`
	Lines          *[]IncomeLine  `json:"lines"`
}

// ToInput converts to the domain input.
func (r SaveIncomeRequest) ToInput() (income.Input, error) {
	in := income.Input{
		Company:        r.Company.ToResolveInput(),
		ContractDate:   r.ContractDate,
		ContractNumber: r.ContractNumber,
		InvoiceDate:    r.InvoiceDate,
		InvoiceNumber:  r.InvoiceNumber,
		UnitOfMeasure:  r.UnitOfMeasure,
		Total:          types.MoneyToMinor(r.Total),
	}

	if r.Lines != nil {
		lines := make([]income.LineInput, 0, len(*r.Lines))
		for _, line := range *r.Lines {
			productID, err := id.Parse(line.ProductID)
			if err != nil {
				return income.Input{}, apperror.NewValidation("invalid product id").
					WithDetail("productId", line.ProductID)
			}
			items := make([]income.MarkingInput, 0, len(line.Markings))
			for _, m := range line.Markings {
				items = append(items, income.MarkingInput{Value: m.Marking, Counter: m.Counter})
			}
			lines = append(lines, income.LineInput{ProductID: productID, Markings: items})
		}
		in.Lines = &lines
	}

	return in, nil
}

// IncomeResponse contains income header fields.
type IncomeResponse struct {
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

// FromIncome creates IncomeResponse from the domain entity.
func FromIncome(doc *income.Income) IncomeResponse {
	return IncomeResponse{
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

// IncomeListItem is an income header with the supplier name.
type IncomeListItem struct {
	IncomeResponse

	CompanyName string `json:"companyName"`
}

// FromIncomeWithCompany creates the listing row response.
func FromIncomeWithCompany(doc *income.WithCompany) IncomeListItem {
	return IncomeListItem{
		IncomeResponse: FromIncome(&doc.Income),
		CompanyName:    doc.CompanyName,
	}
}

// IncomeViewResponse is the hydrated document.
type IncomeViewResponse struct {
	IncomeResponse

	Company CompanyResponse `json:"company"`
	Lines   []LineResponse  `json:"lines"`
}

// FromIncomeView creates the hydrated response.
func FromIncomeView(v *income.View) IncomeViewResponse {
	return IncomeViewResponse{
		IncomeResponse: FromIncome(v.Income),
		Company:        FromCompany(v.Company),
		Lines:          FromProductGroups(v.Lines),
	}
}
