// Package domain holds shared domain-level contracts.
package domain

import (
	"time"
)

// ListFilter contains common filtering and pagination parameters for
// catalog listings.
type ListFilter struct {
	// Search matches against name-like columns (ILIKE)
	Search string

	// IDs restricts to specific identifiers
	IDs []string

	// Pagination
	Limit  int
	Offset int

	// OrderBy is "column" or "column DESC" from a whitelisted set
	OrderBy string
}

// DocumentFilter contains filtering parameters for document listings.
type DocumentFilter struct {
	// Search matches contract/invoice numbers
	Search string

	// IsArchive filters by archive state; nil means both
	IsArchive *bool

	// CompanyID filters by counterparty
	CompanyID *string

	// Invoice date range
	DateFrom *time.Time
	DateTo   *time.Time

	// Pagination
	Limit  int
	Offset int

	OrderBy string
}

// ListResult wraps a page of items with the total count.
type ListResult[T any] struct {
	Items      []T
	TotalCount int64
	Limit      int
	Offset     int
}
