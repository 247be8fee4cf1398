// Package pagination provides the request/result contracts used uniformly by
// all list-returning queries. Request normalization (page and size clamping,
// search trimming) happens in the accessor methods so a zero-value Request is
// already valid, and Result is an immutable snapshot of one page.
package pagination

import "strings"

// Page bounds shared by every paged query. These values are part of the
// query contract between the core and its callers and must stay stable.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Direction is the sort direction for paged queries.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// Request holds pagination, search, and sort parameters for a paged query.
// Fields may be set to any value; the accessor methods clamp out-of-range
// input instead of failing, so handlers can bind query strings directly.
type Request struct {
	PageNumber    int
	PageSize      int
	SearchTerm    string
	SortBy        string
	SortDirection Direction
}

// Page returns the page number clamped to >= 1.
func (r Request) Page() int {
	if r.PageNumber < 1 {
		return 1
	}
	return r.PageNumber
}

// Size returns the page size: DefaultPageSize when the raw value is zero or
// negative, MaxPageSize when it exceeds the maximum.
func (r Request) Size() int {
	switch {
	case r.PageSize < 1:
		return DefaultPageSize
	case r.PageSize > MaxPageSize:
		return MaxPageSize
	default:
		return r.PageSize
	}
}

// Skip returns the number of records to skip for the requested page,
// computed over the clamped page and size.
func (r Request) Skip() int {
	return (r.Page() - 1) * r.Size()
}

// HasSearch reports whether a non-blank search term is set.
func (r Request) HasSearch() bool {
	return strings.TrimSpace(r.SearchTerm) != ""
}

// HasSorting reports whether a non-blank sort field is set.
func (r Request) HasSorting() bool {
	return strings.TrimSpace(r.SortBy) != ""
}

// NormalizedSearchTerm returns the search term with surrounding whitespace
// removed.
func (r Request) NormalizedSearchTerm() string {
	return strings.TrimSpace(r.SearchTerm)
}
