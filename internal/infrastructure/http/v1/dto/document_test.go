package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const documentHeaderJSON = `
	"company": {"name": "Acme LLC"},
	"contractDate": "2026-03-01T00:00:00Z",
	"contractNumber": "C-9",
	"invoiceDate": "2026-03-02T00:00:00Z",
	"invoiceNumber": "INV-9"`

func TestSaveOutcomeRequest_MarkingIDsPresence(t *testing.T) {
	// Absent field: the attachment set must not be touched.
	var absent SaveOutcomeRequest
	require.NoError(t, json.Unmarshal([]byte(`{`+documentHeaderJSON+`}`), &absent))

	in, err := absent.ToInput()
	require.NoError(t, err)
	assert.Nil(t, in.MarkingIDs)

	// Explicitly empty array: detach everything.
	var empty SaveOutcomeRequest
	require.NoError(t, json.Unmarshal([]byte(`{`+documentHeaderJSON+`, "markingIds": []}`), &empty))

	in, err = empty.ToInput()
	require.NoError(t, err)
	require.NotNil(t, in.MarkingIDs)
	assert.Empty(t, *in.MarkingIDs)
}

func TestSaveIncomeRequest_LinesPresence(t *testing.T) {
	var absent SaveIncomeRequest
	require.NoError(t, json.Unmarshal([]byte(`{`+documentHeaderJSON+`}`), &absent))

	in, err := absent.ToInput()
	require.NoError(t, err)
	assert.Nil(t, in.Lines)

	var empty SaveIncomeRequest
	require.NoError(t, json.Unmarshal([]byte(`{`+documentHeaderJSON+`, "lines": []}`), &empty))

	in, err = empty.ToInput()
	require.NoError(t, err)
	require.NotNil(t, in.Lines)
	assert.Empty(t, *in.Lines)
}

func TestSaveOutcomeRequest_InvalidMarkingID(t *testing.T) {
	ids := []string{"not-a-uuid"}
	req := SaveOutcomeRequest{MarkingIDs: &ids}

	_, err := req.ToInput()
	require.Error(t, err)
}
