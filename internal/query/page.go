package query

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultPageSize is used when a request does not specify page_size
const DefaultPageSize = 10

// SizeFallback decides what an unusable page_size value turns into
type SizeFallback int

const (
	// FallbackDefault replaces a non-positive or non-numeric page size with the default size
	FallbackDefault SizeFallback = iota
	// FallbackAll replaces a non-positive or non-numeric page size with the number of
	// matching items, returning everything on one page
	FallbackAll
)

// PagePolicy describes how a resource resolves its page size
type PagePolicy struct {
	DefaultSize int
	Fallback    SizeFallback
}

// PageSize is a page_size parameter as received from the caller
type PageSize struct {
	Value   int
	Present bool
	Valid   bool
}

// SizeOf builds a valid, present PageSize
func SizeOf(n int) PageSize {
	return PageSize{Value: n, Present: true, Valid: n > 0}
}

// ParsePageSize classifies a raw page_size value
func ParsePageSize(raw string) PageSize {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PageSize{}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return PageSize{Present: true}
	}
	return SizeOf(n)
}

// ParsePageNumber returns the 1-based page number, or 1 if raw is absent or unusable
func ParsePageNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// resolve picks the effective page size for a result set of total items
func (p PagePolicy) resolve(size PageSize, total int) int {
	def := p.DefaultSize
	if def <= 0 {
		def = DefaultPageSize
	}

	switch {
	case !size.Present:
		return def
	case size.Valid:
		return size.Value
	case p.Fallback == FallbackAll:
		return total
	default:
		return def
	}
}

// Window is the slice of a result set selected by a page
type Window struct {
	Start      int
	End        int
	TotalPages int
}

// Paginate computes the [Start, End) window for a 1-based page.
// Pages past the end produce an empty window rather than an error.
func Paginate(total, pageNumber, pageSize int) Window {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize <= 0 {
		return Window{}
	}

	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	start := total
	if pageNumber-1 <= total/pageSize {
		start = min((pageNumber-1)*pageSize, total)
	}
	end := total
	if pageSize < total-start {
		end = start + pageSize
	}

	return Window{Start: start, End: end, TotalPages: totalPages}
}

// Params is the list query as supplied by the caller
type Params struct {
	Sort       string
	Search     string
	PageNumber int
	PageSize   PageSize
}

// ParamsFromValues reads sort, search, page_number and page_size from URL query values
func ParamsFromValues(values url.Values) Params {
	return Params{
		Sort:       values.Get("sort"),
		Search:     values.Get("search"),
		PageNumber: ParsePageNumber(values.Get("page_number")),
		PageSize:   ParsePageSize(values.Get("page_size")),
	}
}
