package dto

import (
	"time"

	"stockmark/internal/domain/catalogs/company"
)

// CompanyPayload is the counterparty data embedded in document
// requests. Documents never reference companies by id; the server
// resolves them.
type CompanyPayload struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	INN   string `json:"inn"`
}

// ToResolveInput converts to the domain input.
func (p CompanyPayload) ToResolveInput() company.ResolveInput {
	return company.ResolveInput{
		Name:  p.Name,
		Phone: p.Phone,
		INN:   p.INN,
	}
}

// CompanyResponse contains company fields.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	INN       *string   `json:"inn,omitempty"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromCompany creates CompanyResponse from the domain entity.
func FromCompany(c *company.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID.String(),
		Name:      c.Name,
		Phone:     c.Phone,
		INN:       c.INN,
		Version:   c.Version,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
