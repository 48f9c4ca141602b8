package entity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockmark/internal/core/apperror"
)

func validDocument() Document {
	d := NewDocument("operator")
	d.ContractDate = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	d.ContractNumber = "C-100"
	d.InvoiceDate = time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	d.InvoiceNumber = "INV-100"
	d.Total = 150000
	return d
}

func TestDocumentValidate(t *testing.T) {
	ctx := context.Background()

	doc := validDocument()
	assert.NoError(t, doc.Validate(ctx))

	cases := []struct {
		name   string
		mutate func(d *Document)
		field  string
	}{
		{"missing contract number", func(d *Document) { d.ContractNumber = "" }, "contractNumber"},
		{"missing contract date", func(d *Document) { d.ContractDate = time.Time{} }, "contractDate"},
		{"missing invoice number", func(d *Document) { d.InvoiceNumber = "" }, "invoiceNumber"},
		{"missing invoice date", func(d *Document) { d.InvoiceDate = time.Time{} }, "invoiceDate"},
		{"negative total", func(d *Document) { d.Total = -1 }, "total"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d := validDocument()
			c.mutate(&d)

			err := d.Validate(ctx)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, c.field, appErr.Details["field"])
		})
	}
}

func TestArchiveStamps(t *testing.T) {
	doc := validDocument()
	require.False(t, doc.Archived())
	v := doc.Version

	doc.MarkArchived("alice")
	assert.True(t, doc.Archived())
	require.NotNil(t, doc.ArchivedAt)
	require.NotNil(t, doc.ArchivedBy)
	assert.Equal(t, "alice", *doc.ArchivedBy)
	assert.Equal(t, v+1, doc.Version)

	doc.MarkUnarchived()
	assert.False(t, doc.Archived())
	assert.Nil(t, doc.ArchivedAt)
	assert.Nil(t, doc.ArchivedBy)
	assert.Equal(t, v+2, doc.Version)
}

func TestTouch(t *testing.T) {
	base := NewBaseEntity()
	assert.Equal(t, 1, base.Version)
	before := base.UpdatedAt

	base.Touch()
	assert.Equal(t, 2, base.Version)
	assert.False(t, base.UpdatedAt.Before(before))
}
