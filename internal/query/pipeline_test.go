package query_test

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/BradenHooton/reviewhub/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type product struct {
	ID   string
	Name string
	Note string
}

type productDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func productResource(policy query.PagePolicy) query.Resource[product, productDTO] {
	return query.Resource[product, productDTO]{
		Name: "products",
		Sortable: map[string]query.Field[product]{
			"name": func(p product) string { return p.Name },
		},
		Searchable: map[string]query.Field[product]{
			"name": func(p product) string { return p.Name },
			"note": func(p product) string { return p.Note },
		},
		Page: policy,
		Project: func(p product) productDTO {
			return productDTO{ID: p.ID, Name: p.Name}
		},
	}
}

func newPipeline(policy query.PagePolicy) *query.Pipeline[product, productDTO] {
	return query.NewPipeline(productResource(policy), query.MustCollation("en"))
}

func reviewsPolicy() query.PagePolicy {
	return query.PagePolicy{DefaultSize: 10, Fallback: query.FallbackDefault}
}

func usersPolicy() query.PagePolicy {
	return query.PagePolicy{DefaultSize: 10, Fallback: query.FallbackAll}
}

func sampleProducts() []product {
	names := []string{
		"Wireless Mouse", "keyboard", "Gaming mouse", "Monitor", "mouse pad", "USB Hub",
		"Mousetrap", "Webcam", "Trackball MOUSE", "Headset", "Laptop Stand", "Mouse Bungee",
	}
	products := make([]product, 0, len(names))
	for i, name := range names {
		products = append(products, product{ID: fmt.Sprintf("p%02d", i+1), Name: name})
	}
	return products
}

func names(dtos []productDTO) []string {
	out := make([]string, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.Name)
	}
	return out
}

func TestRun_SortSearchPaginate(t *testing.T) {
	p := newPipeline(reviewsPolicy())

	env := p.Run(sampleProducts(), query.Params{
		Sort:       "name:asc",
		Search:     "name:mouse",
		PageNumber: 1,
		PageSize:   query.SizeOf(5),
	})

	assert.Equal(t, []string{"Gaming mouse", "Mouse Bungee", "mouse pad", "Mousetrap", "Trackball MOUSE"}, names(env.Data))
	assert.Equal(t, 1, env.PageNumber)
	assert.Equal(t, 5, env.PageSize)
	assert.Equal(t, 5, env.Count)
	assert.Equal(t, 2, env.TotalPages)
	assert.False(t, env.HasPreviousPage)
	assert.True(t, env.HasNextPage)

	second := p.Run(sampleProducts(), query.Params{
		Sort:       "name:asc",
		Search:     "name:mouse",
		PageNumber: 2,
		PageSize:   query.SizeOf(5),
	})
	assert.Equal(t, []string{"Wireless Mouse"}, names(second.Data))
	assert.True(t, second.HasPreviousPage)
	assert.False(t, second.HasNextPage)
}

func TestRun_OutOfRangePageIsEmpty(t *testing.T) {
	p := newPipeline(reviewsPolicy())

	env := p.Run(sampleProducts()[:3], query.Params{PageNumber: 99, PageSize: query.SizeOf(10)})

	assert.Equal(t, 0, env.Count)
	assert.NotNil(t, env.Data)
	assert.Empty(t, env.Data)
	assert.False(t, env.HasNextPage)
	assert.True(t, env.HasPreviousPage)
	assert.Equal(t, 1, env.TotalPages)
}

func TestRun_EmptyCollection(t *testing.T) {
	for name, policy := range map[string]query.PagePolicy{"default": reviewsPolicy(), "all": usersPolicy()} {
		t.Run(name, func(t *testing.T) {
			env := newPipeline(policy).Run(nil, query.Params{PageNumber: 1, PageSize: query.ParsePageSize("")})

			assert.Equal(t, 0, env.Count)
			assert.Equal(t, 0, env.TotalPages)
			assert.False(t, env.HasNextPage)
			assert.False(t, env.HasPreviousPage)
			assert.NotNil(t, env.Data)
		})
	}
}

func TestRun_DescendingSort(t *testing.T) {
	p := newPipeline(reviewsPolicy())

	env := p.Run(sampleProducts()[:4], query.Params{Sort: "name:desc", PageNumber: 1, PageSize: query.SizeOf(10)})

	assert.Equal(t, []string{"Wireless Mouse", "Monitor", "keyboard", "Gaming mouse"}, names(env.Data))
}

func TestRun_SortIsLocaleAware(t *testing.T) {
	p := newPipeline(reviewsPolicy())
	records := []product{{ID: "1", Name: "b"}, {ID: "2", Name: "B"}, {ID: "3", Name: "a"}, {ID: "4", Name: "é"}, {ID: "5", Name: "f"}}

	env := p.Run(records, query.Params{Sort: "name:asc", PageNumber: 1, PageSize: query.SizeOf(10)})

	// Byte order would put "B" first and "é" last.
	got := names(env.Data)
	assert.Equal(t, "a", got[0])
	assert.Equal(t, "é", got[3])
	assert.Equal(t, "f", got[4])
}

func TestRun_SortIsStableAndIdempotent(t *testing.T) {
	p := newPipeline(reviewsPolicy())
	records := []product{
		{ID: "1", Name: "beta"}, {ID: "2", Name: "alpha"}, {ID: "3", Name: "beta"}, {ID: "4", Name: "alpha"},
	}
	params := query.Params{Sort: "name:asc", PageNumber: 1, PageSize: query.SizeOf(10)}

	first := p.Run(records, params)
	ids := func(env query.Envelope[productDTO]) []string {
		out := []string{}
		for _, d := range env.Data {
			out = append(out, d.ID)
		}
		return out
	}
	assert.Equal(t, []string{"2", "4", "1", "3"}, ids(first))

	resorted := make([]product, 0, len(first.Data))
	for _, d := range first.Data {
		resorted = append(resorted, product{ID: d.ID, Name: d.Name})
	}
	assert.Equal(t, ids(first), ids(p.Run(resorted, params)))
}

func TestRun_DoesNotMutateInput(t *testing.T) {
	p := newPipeline(reviewsPolicy())
	records := sampleProducts()
	before := append([]product(nil), records...)

	p.Run(records, query.Params{Sort: "name:desc", Search: "name:o", PageNumber: 1, PageSize: query.SizeOf(3)})

	assert.Equal(t, before, records)
}

func TestRun_MalformedSpecsAreIgnored(t *testing.T) {
	p := newPipeline(reviewsPolicy())
	records := sampleProducts()

	cases := []query.Params{
		{Sort: "name"},
		{Sort: "name:up"},
		{Sort: "id:asc"},
		{Sort: "name:asc:extra"},
		{Search: "mouse"},
		{Search: "id:p01"},
		{Search: ":mouse"},
	}

	for _, params := range cases {
		params.PageNumber = 1
		params.PageSize = query.SizeOf(20)
		env := p.Run(records, params)
		assert.Equal(t, len(records), env.Count, "params %+v", params)
		assert.Equal(t, records[0].Name, env.Data[0].Name, "params %+v", params)
	}
}

func TestRun_SearchIsCaseInsensitiveSubset(t *testing.T) {
	p := newPipeline(reviewsPolicy())
	records := sampleProducts()

	env := p.Run(records, query.Params{Search: "name:MOUSE", PageNumber: 1, PageSize: query.SizeOf(50)})

	require.Equal(t, 6, env.Count)
	for _, d := range env.Data {
		assert.Contains(t, strings.ToLower(d.Name), "mouse")
	}
}

func TestRun_SearchTermMayContainColon(t *testing.T) {
	p := newPipeline(reviewsPolicy())
	records := []product{{ID: "1", Name: "a", Note: "ratio 16:9"}, {ID: "2", Name: "b", Note: "ratio 4:3"}}

	env := p.Run(records, query.Params{Search: "note:16:9", PageNumber: 1, PageSize: query.SizeOf(10)})

	require.Equal(t, 1, env.Count)
	assert.Equal(t, "1", env.Data[0].ID)
}

func TestRun_EmptyOrUnmatchedTermYieldsNoRecords(t *testing.T) {
	p := newPipeline(reviewsPolicy())

	for _, search := range []string{"name:", "name:zzz"} {
		env := p.Run(sampleProducts(), query.Params{Search: search, PageNumber: 1, PageSize: query.SizeOf(10)})
		assert.Equal(t, 0, env.Count, search)
		assert.Equal(t, 0, env.TotalPages, search)
		assert.False(t, env.HasNextPage, search)
	}
}

func TestRun_PageSizeFallbacks(t *testing.T) {
	records := sampleProducts()

	tests := []struct {
		name     string
		policy   query.PagePolicy
		raw      string
		wantSize int
	}{
		{"default policy absent", reviewsPolicy(), "", 10},
		{"default policy zero", reviewsPolicy(), "0", 10},
		{"default policy negative", reviewsPolicy(), "-3", 10},
		{"default policy garbage", reviewsPolicy(), "ten", 10},
		{"default policy explicit", reviewsPolicy(), "4", 4},
		{"all policy absent", usersPolicy(), "", 10},
		{"all policy zero", usersPolicy(), "0", len(records)},
		{"all policy garbage", usersPolicy(), "abc", len(records)},
		{"all policy explicit", usersPolicy(), "3", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newPipeline(tt.policy).Run(records, query.Params{PageNumber: 1, PageSize: query.ParsePageSize(tt.raw)})
			assert.Equal(t, tt.wantSize, env.PageSize)
			assert.Equal(t, min(tt.wantSize, len(records)), env.Count)
		})
	}
}

func TestRun_EnvelopeConsistency(t *testing.T) {
	p := newPipeline(reviewsPolicy())
	records := sampleProducts()

	for size := 1; size <= 15; size++ {
		for page := 0; page <= 15; page++ {
			env := p.Run(records, query.Params{PageNumber: page, PageSize: query.SizeOf(size)})
			start := (max(page, 1) - 1) * size

			assert.Equal(t, len(env.Data), env.Count)
			assert.LessOrEqual(t, env.Count, env.PageSize)
			assert.Equal(t, start+env.Count < len(records), env.HasNextPage, "page=%d size=%d", page, size)
			assert.Equal(t, env.PageNumber > 1, env.HasPreviousPage)
		}
	}
}

func TestParamsFromValues(t *testing.T) {
	values := url.Values{}
	values.Set("sort", "name:asc")
	values.Set("search", "name:x")
	values.Set("page_number", "3")
	values.Set("page_size", "25")

	params := query.ParamsFromValues(values)

	assert.Equal(t, "name:asc", params.Sort)
	assert.Equal(t, "name:x", params.Search)
	assert.Equal(t, 3, params.PageNumber)
	assert.Equal(t, query.SizeOf(25), params.PageSize)

	empty := query.ParamsFromValues(url.Values{})
	assert.Equal(t, 1, empty.PageNumber)
	assert.False(t, empty.PageSize.Present)
}
