package dto

import (
	"time"

	"stockmark/internal/domain/markings"
)

// MarkingItem is one serial arriving with an income line.
type MarkingItem struct {
	Marking string `json:"marking" binding:"required"`
	Counter bool   `json:"counter"`
}

// EditMarkingRequest is a partial update of a single marking.
type EditMarkingRequest struct {
	Marking *string `json:"marking"`
	Counter *bool   `json:"counter"`
}

// ToEditInput converts to the domain input.
func (r EditMarkingRequest) ToEditInput() markings.EditInput {
	return markings.EditInput{
		Marking: r.Marking,
		Counter: r.Counter,
	}
}

// MarkingResponse contains marking fields.
type MarkingResponse struct {
	ID         string    `json:"id"`
	Marking    string    `json:"marking"`
	ProductID  string    `json:"productId"`
	IncomeID   *string   `json:"incomeId,omitempty"`
	OutcomeID  *string   `json:"outcomeId,omitempty"`
	Counter    bool      `json:"counter"`
	WrittenOff bool      `json:"writtenOff"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// FromMarking creates MarkingResponse from the domain entity.
func FromMarking(m *markings.Marking) MarkingResponse {
	resp := MarkingResponse{
		ID:         m.ID.String(),
		Marking:    m.Marking,
		ProductID:  m.ProductID.String(),
		Counter:    m.Counter,
		WrittenOff: m.WrittenOff(),
		Version:    m.Version,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.IncomeID != nil {
		s := m.IncomeID.String()
		resp.IncomeID = &s
	}
	if m.OutcomeID != nil {
		s := m.OutcomeID.String()
		resp.OutcomeID = &s
	}
	return resp
}

// LineResponse groups markings of one product in a document view.
type LineResponse struct {
	ProductID string            `json:"productId"`
	Markings  []MarkingResponse `json:"markings"`
}

// FromProductGroups converts grouped markings to responses.
func FromProductGroups(groups []markings.ProductGroup) []LineResponse {
	lines := make([]LineResponse, 0, len(groups))
	for _, g := range groups {
		items := make([]MarkingResponse, 0, len(g.Markings))
		for _, m := range g.Markings {
			items = append(items, FromMarking(m))
		}
		lines = append(lines, LineResponse{
			ProductID: g.ProductID.String(),
			Markings:  items,
		})
	}
	return lines
}

// CheckMarkingsRequest is the bulk existence check payload.
type CheckMarkingsRequest struct {
	Markings []string `json:"markings" binding:"required,min=1"`
}

// CheckMarkingsResponse reports stored and request-local duplicates.
type CheckMarkingsResponse struct {
	Existing                []string `json:"existing"`
	DuplicatesWithinRequest []string `json:"duplicatesWithinRequest"`
}

// FromCheckResult creates the response from the domain result.
func FromCheckResult(res markings.CheckResult) CheckMarkingsResponse {
	return CheckMarkingsResponse{
		Existing:                res.Existing,
		DuplicatesWithinRequest: res.DuplicatesWithinRequest,
	}
}
