// Package company provides the counterparty catalog.
// A company is identified by its tax id (INN) when present, otherwise
// by the exact (name, phone) pair.
package company

import (
	"context"
	"strings"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/entity"
)

// Company represents a counterparty (supplier or customer).
type Company struct {
	entity.BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Phone is the primary contact phone
	Phone string `db:"phone" json:"phone"`

	// INN is the tax identification number. Nullable; at most one row
	// per non-null INN (partial unique index).
	INN *string `db:"inn" json:"inn,omitempty"`
}

// NewCompany creates a new Company with required fields.
func NewCompany(name, phone string, inn *string) *Company {
	return &Company{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		Phone:      phone,
		INN:        inn,
	}
}

// Validate implements entity.Validatable.
func (c *Company) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("company name is required").
			WithDetail("field", "name")
	}
	return nil
}

// ResolveInput is the counterparty data arriving with a document.
type ResolveInput struct {
	Name  string
	Phone string
	INN   string
}
