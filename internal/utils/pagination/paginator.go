package pagination

import (
	"maps"
	"slices"
)

// DefaultPageSize is used when a non-positive page size is requested.
const DefaultPageSize = 1000

// Paginator tracks which fixed-size pages of a list have been loaded. The set
// only grows until Reset; page 0 is always loaded.
type Paginator struct {
	pageSize int
	loaded   map[int]struct{}
}

// Page is the visible window of a list plus its metadata.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	TotalPages  int
	HasNextPage bool
	LoadedCount int
}

func NewPaginator(pageSize int) *Paginator {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Paginator{pageSize: pageSize, loaded: map[int]struct{}{0: {}}}
}

func (p *Paginator) PageSize() int { return p.pageSize }

// LoadPage marks page n as loaded.
func (p *Paginator) LoadPage(n int) {
	if n >= 0 {
		p.loaded[n] = struct{}{}
	}
}

// LoadNextPage loads the page after the highest loaded one if it exists in a
// list of total items, and reports whether it did.
func (p *Paginator) LoadNextPage(total int) bool {
	next := p.maxLoaded() + 1
	if next > totalPages(total, p.pageSize)-1 {
		return false
	}
	p.LoadPage(next)
	return true
}

// Reset returns to the first page only.
func (p *Paginator) Reset() {
	p.loaded = map[int]struct{}{0: {}}
}

// LoadedPages returns the loaded page indices in ascending order.
func (p *Paginator) LoadedPages() []int {
	return slices.Sorted(maps.Keys(p.loaded))
}

func (p *Paginator) maxLoaded() int {
	return slices.Max(p.LoadedPages())
}

// Paginate concatenates the loaded pages of items in ascending page order.
func Paginate[T any](p *Paginator, items []T) Page[T] {
	total := len(items)
	out := make([]T, 0, min(total, len(p.loaded)*p.pageSize))
	for _, n := range p.LoadedPages() {
		start := n * p.pageSize
		if start >= total {
			continue
		}
		out = append(out, items[start:min(start+p.pageSize, total)]...)
	}
	pages := totalPages(total, p.pageSize)
	return Page[T]{
		Items:       out,
		TotalCount:  total,
		TotalPages:  pages,
		HasNextPage: p.maxLoaded() < pages-1,
		LoadedCount: len(out),
	}
}

func totalPages(total, pageSize int) int {
	return (total + pageSize - 1) / pageSize
}
