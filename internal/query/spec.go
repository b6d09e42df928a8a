package query

import "strings"

// Order is a sort direction accepted in a sort parameter
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// Field extracts the string value of a named field from a record
type Field[T any] func(T) string

// SortSpec is a validated "field:order" sort parameter
type SortSpec struct {
	Field string
	Order Order
}

// SearchSpec is a validated "field:term" search parameter
type SearchSpec struct {
	Field string
	Term  string
}

// ParseSort validates a raw "field:order" value against the sortable fields.
// Anything malformed or not allowlisted yields ok=false and is otherwise ignored.
func ParseSort[T any](raw string, sortable map[string]Field[T]) (SortSpec, bool) {
	if raw == "" {
		return SortSpec{}, false
	}

	parts := strings.Split(raw, ":")
	if len(parts) != 2 {
		return SortSpec{}, false
	}

	field, order := parts[0], Order(parts[1])
	if _, ok := sortable[field]; !ok {
		return SortSpec{}, false
	}
	if order != OrderAsc && order != OrderDesc {
		return SortSpec{}, false
	}

	return SortSpec{Field: field, Order: order}, true
}

// ParseSearch validates a raw "field:term" value against the searchable fields.
// The term is everything after the first colon, so it may itself contain colons.
func ParseSearch[T any](raw string, searchable map[string]Field[T]) (SearchSpec, bool) {
	if raw == "" {
		return SearchSpec{}, false
	}

	field, term, found := strings.Cut(raw, ":")
	if !found || field == "" {
		return SearchSpec{}, false
	}
	if _, ok := searchable[field]; !ok {
		return SearchSpec{}, false
	}

	return SearchSpec{Field: field, Term: term}, true
}
