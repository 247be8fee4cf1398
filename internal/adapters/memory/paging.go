package memory

import (
	"sort"

	"github.com/avoronkov/todoapp/internal/domain/pagination"
)

// orderBy sorts items with a stable three-way comparison, reversed for
// descending requests.
func orderBy[T any](items []T, cmp func(a, b T) int, direction pagination.Direction) {
	sort.SliceStable(items, func(i, j int) bool {
		c := cmp(items[i], items[j])
		if direction == pagination.Descending {
			return c > 0
		}
		return c < 0
	})
}

// paginate applies the request's skip/take window to the already filtered
// and sorted items.
func paginate[T any](items []T, req pagination.Request) (*pagination.Result[T], error) {
	total := len(items)
	skip := req.Skip()
	size := req.Size()

	switch {
	case skip >= total:
		items = []T{}
	case skip+size > total:
		items = items[skip:]
	default:
		items = items[skip : skip+size]
	}
	return pagination.NewResult(items, total, req.Page(), size)
}
