package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmark/internal/core/id"
	"stockmark/internal/core/types"
	"stockmark/internal/domain/catalogs/product"
	"stockmark/internal/domain/markings"
)

func TestFromMarking(t *testing.T) {
	m := markings.NewMarking("SN-001", id.New(), id.New(), true)

	resp := FromMarking(m)

	assert.Equal(t, m.ID.String(), resp.ID)
	assert.Equal(t, "SN-001", resp.Marking)
	require.NotNil(t, resp.IncomeID)
	assert.Equal(t, m.IncomeID.String(), *resp.IncomeID)
	assert.Nil(t, resp.OutcomeID)
	assert.False(t, resp.WrittenOff)
	assert.True(t, resp.Counter)

	outcomeID := id.New()
	m.OutcomeID = &outcomeID
	resp = FromMarking(m)
	require.NotNil(t, resp.OutcomeID)
	assert.Equal(t, outcomeID.String(), *resp.OutcomeID)
	assert.True(t, resp.WrittenOff)
}

func TestFromProductGroups(t *testing.T) {
	pA := id.New()
	incomeID := id.New()
	groups := markings.GroupByProduct([]*markings.Marking{
		markings.NewMarking("A-1", pA, incomeID, false),
		markings.NewMarking("A-2", pA, incomeID, false),
	})

	lines := FromProductGroups(groups)

	require.Len(t, lines, 1)
	assert.Equal(t, pA.String(), lines[0].ProductID)
	require.Len(t, lines[0].Markings, 2)
	assert.Equal(t, "A-1", lines[0].Markings[0].Marking)

	assert.Empty(t, FromProductGroups(nil))
}

func TestProductMoneyConversion(t *testing.T) {
	req := CreateProductRequest{
		Name:  "Widget",
		Price: types.MustMoney("123.45"),
	}

	p := req.ToProduct()
	assert.Equal(t, int64(12345), p.Price)

	resp := FromProduct(p)
	assert.True(t, types.MustMoney("123.45").Equal(resp.Price))
}

func TestFromProductWithStock(t *testing.T) {
	p := product.WithStock{
		Product: *product.NewProduct("Widget", 1000, 0.5, 10),
		Stock:   7,
	}

	resp := FromProductWithStock(&p)
	assert.Equal(t, "Widget", resp.Name)
	assert.Equal(t, int64(7), resp.Stock)
}
