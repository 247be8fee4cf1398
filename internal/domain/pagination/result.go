package pagination

import "errors"

// ErrNilItems is returned by NewResult when the items slice is absent.
// An empty page is legal; a missing one is a programming error.
var ErrNilItems = errors.New("pagination: items must not be nil")

// Result is an immutable snapshot of one page of a query: the items in the
// order the store supplied them, plus the counts needed to derive paging
// state.
type Result[T any] struct {
	items      []T
	totalCount int
	pageNumber int
	pageSize   int
}

// NewResult builds a Result from one page of items and the total match
// count. Fails when items is nil.
func NewResult[T any](items []T, totalCount, pageNumber, pageSize int) (*Result[T], error) {
	if items == nil {
		return nil, ErrNilItems
	}
	snapshot := make([]T, len(items))
	copy(snapshot, items)
	return &Result[T]{
		items:      snapshot,
		totalCount: totalCount,
		pageNumber: pageNumber,
		pageSize:   pageSize,
	}, nil
}

// Empty returns a zero-item Result for the given page coordinates.
func Empty[T any](pageNumber, pageSize int) *Result[T] {
	return &Result[T]{
		items:      []T{},
		pageNumber: pageNumber,
		pageSize:   pageSize,
	}
}

// Items returns the page's items in supplied order. The returned slice is a
// copy; mutating it does not affect the Result.
func (r *Result[T]) Items() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

// TotalCount returns the total number of items matching the query.
func (r *Result[T]) TotalCount() int {
	return r.totalCount
}

// PageNumber returns the page number this result represents.
func (r *Result[T]) PageNumber() int {
	return r.pageNumber
}

// PageSize returns the page size the result was computed with.
func (r *Result[T]) PageSize() int {
	return r.pageSize
}

// TotalPages returns ceil(TotalCount / PageSize); zero when the page size
// is zero.
func (r *Result[T]) TotalPages() int {
	if r.pageSize <= 0 {
		return 0
	}
	return (r.totalCount + r.pageSize - 1) / r.pageSize
}

// HasPreviousPage reports whether a page precedes this one.
func (r *Result[T]) HasPreviousPage() bool {
	return r.pageNumber > 1
}

// HasNextPage reports whether a page follows this one.
func (r *Result[T]) HasNextPage() bool {
	return r.pageNumber < r.TotalPages()
}
