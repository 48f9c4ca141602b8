package markings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"stockmark/internal/core/apperror"
	"stockmark/internal/core/id"
)

func TestNewMarking(t *testing.T) {
	productID := id.New()
	incomeID := id.New()

	m := NewMarking("SN-001", productID, incomeID, true)

	assert.Equal(t, "SN-001", m.Marking)
	assert.Equal(t, productID, m.ProductID)
	assert.Equal(t, incomeID, *m.IncomeID)
	assert.Nil(t, m.OutcomeID)
	assert.True(t, m.Counter)
	assert.False(t, m.WrittenOff())
	assert.Equal(t, 1, m.Version)
}

func TestMarkingValidate(t *testing.T) {
	ctx := context.Background()

	m := NewMarking("SN-001", id.New(), id.New(), false)
	assert.NoError(t, m.Validate(ctx))

	m.Marking = "   "
	err := m.Validate(ctx)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))

	m.Marking = "SN-001"
	m.ProductID = id.Nil()
	err = m.Validate(ctx)
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
}

func TestWrittenOff(t *testing.T) {
	m := NewMarking("SN-001", id.New(), id.New(), false)
	assert.False(t, m.WrittenOff())

	outcomeID := id.New()
	m.OutcomeID = &outcomeID
	assert.True(t, m.WrittenOff())
}

func TestGroupByProduct(t *testing.T) {
	pA := id.New()
	pB := id.New()
	incomeID := id.New()

	items := []*Marking{
		NewMarking("A-1", pA, incomeID, false),
		NewMarking("B-1", pB, incomeID, false),
		NewMarking("A-2", pA, incomeID, false),
		NewMarking("B-2", pB, incomeID, false),
	}

	groups := GroupByProduct(items)

	// First-seen product order, markings in input order within a group.
	assert.Len(t, groups, 2)
	assert.Equal(t, pA, groups[0].ProductID)
	assert.Equal(t, pB, groups[1].ProductID)
	assert.Len(t, groups[0].Markings, 2)
	assert.Equal(t, "A-1", groups[0].Markings[0].Marking)
	assert.Equal(t, "A-2", groups[0].Markings[1].Marking)
	assert.Equal(t, "B-1", groups[1].Markings[0].Marking)

	assert.Empty(t, GroupByProduct(nil))
}
