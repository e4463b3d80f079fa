// Package pagination slices in-memory result lists into pages.
package pagination

import (
	"math"
)

// PageRequest holds pagination parameters parsed from query strings.
// A zero request means "everything on one page".
type PageRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// IsZero reports whether no pagination was requested.
func (p *PageRequest) IsZero() bool {
	return p.Page == 0 && p.PageSize == 0
}

// Defaults fills in default values when only one of page or page_size is provided.
func (p *PageRequest) Defaults() {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PageSize == 0 {
		p.PageSize = 20
	}
}

// Offset returns the index of the first item of the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page, pageSize int, totalItems int64) PageResponse[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(pageSize)))
	}
	if data == nil {
		data = []T{}
	}
	return PageResponse[T]{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}

// Paginate cuts the requested page out of items, keeping their order.
func Paginate[T any](items []T, req PageRequest) PageResponse[T] {
	total := int64(len(items))
	if req.IsZero() {
		size := len(items)
		pages := 1
		if size == 0 {
			pages = 0
		}
		resp := NewPageResponse(items, 1, size, total)
		resp.TotalPages = pages
		return resp
	}

	req.Defaults()
	start := req.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + req.PageSize
	if end > len(items) {
		end = len(items)
	}
	return NewPageResponse(items[start:end], req.Page, req.PageSize, total)
}
