package query

import (
	"slices"
	"strings"
)

// Resource describes one listable record kind: which fields may be sorted and
// searched, how pages are sized, and how a record is projected for output.
type Resource[T, D any] struct {
	Name       string
	Sortable   map[string]Field[T]
	Searchable map[string]Field[T]
	Page       PagePolicy
	Project    func(T) D
}

// Envelope is the paginated response body returned by list endpoints
type Envelope[D any] struct {
	PageNumber      int  `json:"page_number"`
	PageSize        int  `json:"page_size"`
	Count           int  `json:"count"`
	TotalPages      int  `json:"total_pages"`
	HasPreviousPage bool `json:"has_previous_page"`
	HasNextPage     bool `json:"has_next_page"`
	Data            []D  `json:"data"`
}

// Pipeline sorts, filters, paginates and projects a fetched collection.
// It holds no mutable state and is safe for concurrent use.
type Pipeline[T, D any] struct {
	resource  Resource[T, D]
	collation *Collation
}

// NewPipeline creates a Pipeline for a resource using the given collation for sorting
func NewPipeline[T, D any](resource Resource[T, D], collation *Collation) *Pipeline[T, D] {
	return &Pipeline[T, D]{
		resource:  resource,
		collation: collation,
	}
}

// Run applies sort, then search, then pagination, then projection.
// The input slice is never modified.
func (p *Pipeline[T, D]) Run(records []T, params Params) Envelope[D] {
	items := records

	if spec, ok := ParseSort(params.Sort, p.resource.Sortable); ok {
		items = p.sort(items, spec)
	}

	if spec, ok := ParseSearch(params.Search, p.resource.Searchable); ok {
		items = filter(items, p.resource.Searchable[spec.Field], spec.Term)
	}

	pageNumber := max(params.PageNumber, 1)
	total := len(items)
	pageSize := p.resource.Page.resolve(params.PageSize, total)
	window := Paginate(total, pageNumber, pageSize)

	data := make([]D, 0, window.End-window.Start)
	for _, item := range items[window.Start:window.End] {
		data = append(data, p.resource.Project(item))
	}

	return Envelope[D]{
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		Count:           len(data),
		TotalPages:      window.TotalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     window.End < total,
		Data:            data,
	}
}

// sort returns a stably sorted copy; equal keys keep their input order
func (p *Pipeline[T, D]) sort(items []T, spec SortSpec) []T {
	field := p.resource.Sortable[spec.Field]
	sorted := slices.Clone(items)

	slices.SortStableFunc(sorted, func(a, b T) int {
		if spec.Order == OrderDesc {
			return p.collation.Compare(field(b), field(a))
		}
		return p.collation.Compare(field(a), field(b))
	})

	return sorted
}

// filter keeps records whose field contains term, ignoring case. An empty term matches nothing.
func filter[T any](items []T, field Field[T], term string) []T {
	matched := make([]T, 0)
	if term == "" {
		return matched
	}

	needle := strings.ToLower(term)
	for _, item := range items {
		if strings.Contains(strings.ToLower(field(item)), needle) {
			matched = append(matched, item)
		}
	}
	return matched
}
