// Package apperror provides structured error handling for the ledger.
// All business errors must use AppError for consistent API responses.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes rendered to API clients
const (
	// Infrastructure errors (5xx)
	CodeInternal = "INTERNAL_ERROR"
	CodeDatabase = "DATABASE_ERROR"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Business rule violations (422)
	CodeArchivedDocument       = "ARCHIVED_DOCUMENT"
	CodeNotArchived            = "NOT_ARCHIVED"
	CodeMarkingWrittenOff      = "MARKING_WRITTEN_OFF"
	CodeHasWrittenOffMarkings  = "HAS_WRITTEN_OFF_MARKINGS"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"

	// Conflicts (409)
	CodeDuplicateMarking  = "DUPLICATE_MARKING"
	CodeAlreadyWrittenOff = "ALREADY_WRITTEN_OFF"

	// Authorization errors (401, 403)
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the service.
// It implements the error interface and provides structured details for
// API responses.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (field errors, conflicting ids, etc.)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions for common errors ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewArchivedDocument signals a mutation attempt on a frozen document
// or one of its markings (422).
func NewArchivedDocument(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeArchivedDocument,
		Message:    fmt.Sprintf("%s is archived and read-only", entity),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewNotArchived signals a delete attempt on a live document (422).
func NewNotArchived(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotArchived,
		Message:    fmt.Sprintf("%s must be archived before deletion", entity),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewMarkingWrittenOff signals an edit/delete attempt on a marking
// already consumed by an outcome (422).
func NewMarkingWrittenOff(markingID any) *AppError {
	return &AppError{
		Code:       CodeMarkingWrittenOff,
		Message:    "marking is written off and immutable",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"marking_id": markingID},
	}
}

// NewHasWrittenOffMarkings signals an operation that would orphan
// financially linked markings (422).
func NewHasWrittenOffMarkings(markings []string) *AppError {
	return &AppError{
		Code:       CodeHasWrittenOffMarkings,
		Message:    "operation affects markings that are already written off",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"markings": markings},
	}
}

// NewDuplicateMarking signals a marking string collision anywhere in
// the store (409).
func NewDuplicateMarking(markings []string) *AppError {
	return &AppError{
		Code:       CodeDuplicateMarking,
		Message:    "marking already exists",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"markings": markings},
	}
}

// NewAlreadyWrittenOff signals an attach attempt on markings linked to
// a different outcome, including races lost at commit time (409).
func NewAlreadyWrittenOff(markingIDs []string) *AppError {
	return &AppError{
		Code:       CodeAlreadyWrittenOff,
		Message:    "markings are already attached to another outcome",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"marking_ids": markingIDs},
	}
}

// NewConcurrentModification creates an optimistic locking error (409)
func NewConcurrentModification(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeConcurrentModification,
		Message:    "Record was modified by another user. Please refresh and try again.",
		HTTPStatus: http.StatusConflict,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal server error (hides details from client)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewDatabase wraps an unexpected store-level fault (500)
func NewDatabase(err error) *AppError {
	return &AppError{
		Code:       CodeDatabase,
		Message:    "Database error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// NewUnauthorized creates an authentication error (401)
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (403)
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

// HasCode checks if error carries the given code
func HasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}
