// Package product provides the product catalog and the live stock
// aggregate derived from marking state.
package product

import (
	"context"
	"strings"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/entity"
)

// Product represents a catalog item. Price and KPI are static
// metadata; the stock figure is always computed from markings, never
// stored.
type Product struct {
	entity.BaseEntity

	// Name is the display name
	Name string `db:"name" json:"name"`

	// Price in minor units
	Price int64 `db:"price" json:"price"`

	// KPI is the unit metric
	KPI float64 `db:"kpi" json:"kpi"`

	// Quantity is static reference metadata from the catalog
	Quantity int `db:"quantity" json:"quantity"`
}

// NewProduct creates a new Product with required fields.
func NewProduct(name string, price int64, kpi float64, quantity int) *Product {
	return &Product{
		BaseEntity: entity.NewBaseEntity(),
		Name:       name,
		Price:      price,
		KPI:        kpi,
		Quantity:   quantity,
	}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "name")
	}
	if p.Price < 0 {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	return nil
}

// WithStock is a Product with the computed count of markings not yet
// written off (outcome reference is null).
type WithStock struct {
	Product

	Stock int64 `db:"stock" json:"stock"`
}
