// Package dto provides Data Transfer Objects for API requests and
// responses.
package dto

import (
	"time"

	"stockmark/internal/core/id"
	"stockmark/internal/domain"
)

// --- List parameters ---

// ListRequest contains common listing parameters for catalogs.
type ListRequest struct {
	Search  string   `form:"search"`
	IDs     []string `form:"ids"`
	Limit   int      `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset  int      `form:"offset" binding:"omitempty,min=0"`
	OrderBy string   `form:"orderBy"`
}

// Defaults applies default paging.
func (r *ListRequest) Defaults() {
	if r.Limit == 0 {
		r.Limit = 50
	}
}

// ToFilter converts to the domain filter.
func (r *ListRequest) ToFilter() domain.ListFilter {
	return domain.ListFilter{
		Search:  r.Search,
		IDs:     r.IDs,
		Limit:   r.Limit,
		Offset:  r.Offset,
		OrderBy: r.OrderBy,
	}
}

// DocumentListRequest contains listing parameters for documents.
type DocumentListRequest struct {
	Search    string     `form:"search"`
	IsArchive *bool      `form:"isArchive"`
	CompanyID *string    `form:"companyId"`
	DateFrom  *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=500"`
	Offset    int        `form:"offset" binding:"omitempty,min=0"`
	OrderBy   string     `form:"orderBy"`
}

// Defaults applies default paging.
func (r *DocumentListRequest) Defaults() {
	if r.Limit == 0 {
		r.Limit = 50
	}
}

// ToFilter converts to the domain filter.
func (r *DocumentListRequest) ToFilter() domain.DocumentFilter {
	return domain.DocumentFilter{
		Search:    r.Search,
		IsArchive: r.IsArchive,
		CompanyID: r.CompanyID,
		DateFrom:  r.DateFrom,
		DateTo:    r.DateTo,
		Limit:     r.Limit,
		Offset:    r.Offset,
		OrderBy:   r.OrderBy,
	}
}

// --- Responses ---

// ListResponse wraps list results with paging metadata.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse builds a ListResponse from a domain list result.
func NewListResponse[T, R any](res domain.ListResult[T], convert func(T) R) ListResponse {
	items := make([]R, 0, len(res.Items))
	for _, item := range res.Items {
		items = append(items, convert(item))
	}
	return ListResponse{
		Items:      items,
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	}
}

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates an ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse mirrors the error contract rendered by the error
// middleware.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
