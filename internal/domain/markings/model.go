// Package markings provides the marking lifecycle engine.
//
// A marking is the atomic unit of inventory: a globally unique serial
// string representing one physical unit of a product. It is created as
// a line item of an income document and consumed (written off) by at
// most one outcome document. A written-off marking is immutable and
// undeletable; a marking belonging to an archived income is frozen
// with its document.
package markings

import (
	"context"
	"strings"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/entity"
	"stockmark/internal/core/id"
)

// Marking represents one serialized unit.
type Marking struct {
	entity.BaseEntity

	// Marking is the globally unique serial string
	Marking string `db:"marking" json:"marking"`

	// ProductID is the owning product
	ProductID id.ID `db:"product_id" json:"productId"`

	// IncomeID is the parent income document. Nullable only in legacy
	// data; normally required.
	IncomeID *id.ID `db:"income_id" json:"incomeId,omitempty"`

	// OutcomeID is the consuming outcome document; null means the unit
	// is in stock. Set at most once concurrently via a conditional
	// update.
	OutcomeID *id.ID `db:"outcome_id" json:"outcomeId,omitempty"`

	// Counter flags units that participate in KPI counting
	Counter bool `db:"counter" json:"counter"`
}

// NewMarking creates a new in-stock marking for an income line item.
func NewMarking(value string, productID, incomeID id.ID, counter bool) *Marking {
	return &Marking{
		BaseEntity: entity.NewBaseEntity(),
		Marking:    value,
		ProductID:  productID,
		IncomeID:   &incomeID,
		Counter:    counter,
	}
}

// WrittenOff reports whether the marking is consumed by an outcome.
func (m *Marking) WrittenOff() bool {
	return m.OutcomeID != nil
}

// Validate implements entity.Validatable.
func (m *Marking) Validate(ctx context.Context) error {
	if strings.TrimSpace(m.Marking) == "" {
		return apperror.NewValidation("marking value is required").
			WithDetail("field", "marking")
	}
	if id.IsNil(m.ProductID) {
		return apperror.NewValidation("product is required").
			WithDetail("field", "productId")
	}
	return nil
}

// Ref identifies a marking through its composite endpoint path
// (income, product, marking id).
type Ref struct {
	IncomeID  id.ID
	ProductID id.ID
	MarkingID id.ID
}

// EditInput is a partial field update for a single marking.
// Nil fields are left untouched.
type EditInput struct {
	Marking *string
	Counter *bool
}

// ProductGroup is the markings of one product within a document view.
type ProductGroup struct {
	ProductID id.ID      `json:"productId"`
	Markings  []*Marking `json:"markings"`
}

// GroupByProduct groups markings by product, preserving first-seen
// order.
func GroupByProduct(items []*Marking) []ProductGroup {
	var groups []ProductGroup
	index := make(map[id.ID]int)
	for _, m := range items {
		i, ok := index[m.ProductID]
		if !ok {
			i = len(groups)
			index[m.ProductID] = i
			groups = append(groups, ProductGroup{ProductID: m.ProductID})
		}
		groups[i].Markings = append(groups[i].Markings, m)
	}
	return groups
}

// CheckResult is the outcome of a bulk existence check.
type CheckResult struct {
	// Existing are request values already present in the store
	Existing []string `json:"existing"`

	// DuplicatesWithinRequest are values repeated inside the request
	DuplicatesWithinRequest []string `json:"duplicatesWithinRequest"`
}
