package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFactoryStatuses(t *testing.T) {
	cases := []struct {
		err    *AppError
		code   string
		status int
	}{
		{NewValidation("bad"), CodeValidation, http.StatusBadRequest},
		{NewNotFound("income", "abc"), CodeNotFound, http.StatusNotFound},
		{NewArchivedDocument("income", "abc"), CodeArchivedDocument, http.StatusUnprocessableEntity},
		{NewNotArchived("outcome", "abc"), CodeNotArchived, http.StatusUnprocessableEntity},
		{NewMarkingWrittenOff("SN-1"), CodeMarkingWrittenOff, http.StatusUnprocessableEntity},
		{NewHasWrittenOffMarkings([]string{"SN-1"}), CodeHasWrittenOffMarkings, http.StatusUnprocessableEntity},
		{NewDuplicateMarking([]string{"SN-1"}), CodeDuplicateMarking, http.StatusConflict},
		{NewAlreadyWrittenOff([]string{"SN-1"}), CodeAlreadyWrittenOff, http.StatusConflict},
		{NewConcurrentModification("income", "abc"), CodeConcurrentModification, http.StatusConflict},
		{NewUnauthorized("no token"), CodeUnauthorized, http.StatusUnauthorized},
		{NewForbidden("read only"), CodeForbidden, http.StatusForbidden},
		{NewInternal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
		{NewDatabase(errors.New("boom")), CodeDatabase, http.StatusInternalServerError},
	}

	for _, c := range cases {
		assert.Equal(t, c.code, c.err.Code)
		assert.Equal(t, c.status, c.err.HTTPStatus)
	}
}

func TestErrorString(t *testing.T) {
	err := NewValidation("name is required")
	assert.Equal(t, "VALIDATION_ERROR: name is required", err.Error())

	wrapped := NewDatabase(errors.New("connection refused"))
	assert.Contains(t, wrapped.Error(), "connection refused")
}

func TestWithDetail(t *testing.T) {
	err := NewValidation("bad field").WithDetail("field", "name")
	assert.Equal(t, "name", err.Details["field"])

	err.WithDetail("hint", "trim spaces")
	assert.Len(t, err.Details, 2)
}

func TestUnwrapChain(t *testing.T) {
	cause := errors.New("row not found")
	err := NewNotFound("company", "x").WithCause(cause)

	assert.True(t, errors.Is(err, cause))

	// AppError survives further wrapping.
	outer := fmt.Errorf("resolve supplier: %w", err)
	got, ok := AsAppError(outer)
	assert.True(t, ok)
	assert.Equal(t, CodeNotFound, got.Code)
	assert.True(t, IsNotFound(outer))
	assert.True(t, HasCode(outer, CodeNotFound))
	assert.False(t, HasCode(outer, CodeValidation))
}

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, GetHTTPStatus(NewDuplicateMarking([]string{"SN-1"})))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("plain")))
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(NewValidation("x")))
	assert.False(t, IsAppError(errors.New("x")))
	assert.False(t, IsAppError(nil))
}
