// Package query holds paging primitives shared by listing operations.
package query

import "math"

// MaxPage is the largest page number the HTTP layer accepts (the page binding max).
const MaxPage = 1_000_000

// Pagination selects a zero-based page of a fixed size.
type Pagination struct {
	Page int
	Size int
}

// Offset returns the number of rows to skip. It saturates at math.MaxInt
// instead of overflowing, so an out-of-range page reads as past the end.
func (p Pagination) Offset() int {
	if p.Page <= 0 || p.Size <= 0 {
		return 0
	}
	if p.Page > math.MaxInt/p.Size {
		return math.MaxInt
	}
	return p.Page * p.Size
}

// Page is one slice of an ordered result set together with its total size.
type Page[T any] struct {
	Items      []T
	Total      int64
	Pagination Pagination
}

// NewPage assembles a page; a nil item slice is normalised to empty.
func NewPage[T any](items []T, total int64, pagination Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Pagination: pagination}
}

// TotalPages reports how many pages of the current size the result set spans.
func (p Page[T]) TotalPages() int {
	if p.Pagination.Size <= 0 {
		return 0
	}
	return int((p.Total + int64(p.Pagination.Size) - 1) / int64(p.Pagination.Size))
}

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool {
	return p.Pagination.Page+1 < p.TotalPages()
}

// LastPage is the index of the final page; an empty result still has page 0.
func (p Page[T]) LastPage() int {
	return max(p.TotalPages()-1, 0)
}

// HasPrevious reports whether the page before this one exists.
func (p Page[T]) HasPrevious() bool {
	return p.Pagination.Page > 0 && p.Pagination.Page-1 <= p.LastPage()
}
