package pagination

import "math"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Request struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalize clamps out-of-range values: page below 1 becomes 1, a page size
// below 1 becomes DefaultPageSize and one above MaxPageSize becomes MaxPageSize.
func (r Request) Normalize() Request {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.PageSize < 1 {
		r.PageSize = DefaultPageSize
	}
	if r.PageSize > MaxPageSize {
		r.PageSize = MaxPageSize
	}
	return r
}

// Offset saturates at math.MaxInt instead of overflowing.
func (r Request) Offset() int {
	if r.Page <= 1 || r.PageSize <= 0 {
		return 0
	}
	if r.Page-1 > math.MaxInt/r.PageSize {
		return math.MaxInt
	}
	return (r.Page - 1) * r.PageSize
}

type PageResult[T any] struct {
	Items      []T `json:"items"`
	TotalItems int `json:"total_items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

// Paginate cuts the requested page out of items, the full ordered result set,
// and reports totalCount alongside the normalized page parameters.
// It never fails: out-of-range input is clamped and a page past the end is empty.
func Paginate[T any](items []T, totalCount, page, pageSize int) PageResult[T] {
	req := Request{Page: page, PageSize: pageSize}.Normalize()

	res := PageResult[T]{
		Items:    []T{},
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if totalCount <= 0 {
		return res
	}

	res.TotalItems = totalCount
	res.TotalPages = pageCount(totalCount, req.PageSize)

	if req.Page > pageCount(len(items), req.PageSize) {
		return res
	}
	start := req.Offset()
	end := min(start+req.PageSize, len(items))
	res.Items = items[start:end]

	return res
}

func pageCount(n, size int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/size + 1
}
