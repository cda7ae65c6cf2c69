package pagination

import (
	"net/http"
	"strconv"
)

// DefaultPageSize is used when a request does not specify a limit.
const DefaultPageSize = 10

// MaxPageSize caps the number of items a single page may return.
const MaxPageSize = 100

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
	Offset   int `json:"-"`
}

// DefaultParams returns sensible pagination defaults.
func DefaultParams() Params {
	return Params{
		Page:     1,
		PageSize: DefaultPageSize,
		Offset:   0,
	}
}

// FromRequest extracts pagination parameters from an HTTP request.
// The storefront convention uses "page" and "limit" query keys.
func FromRequest(r *http.Request) Params {
	p := DefaultParams()

	if page := r.URL.Query().Get("page"); page != "" {
		if v, err := strconv.Atoi(page); err == nil && v > 0 {
			p.Page = v
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		if v, err := strconv.Atoi(limit); err == nil && v > 0 && v <= MaxPageSize {
			p.PageSize = v
		}
	}

	p.Offset = (p.Page - 1) * p.PageSize
	return p
}

// TotalPages returns ceil(total / pageSize). Zero totals yield zero pages.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := total / pageSize
	if total%pageSize > 0 {
		pages++
	}
	return pages
}

// ClampPage bounds page to [1, totalPages]. A request past the last page is
// pulled back to the last page rather than returning an empty page as success.
// When totalPages is zero (empty result set) page 1 is returned.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}

// Result wraps a paginated response.
type Result[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// NewResult creates a paginated result.
func NewResult[T any](data []T, total int, params Params) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{
		Data:       data,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: TotalPages(total, params.PageSize),
	}
}
