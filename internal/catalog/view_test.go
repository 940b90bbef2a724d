package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskshop/internal/model"
)

func ids(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestView_DefaultsReturnFirstPageInSeedOrder(t *testing.T) {
	page := View(Seed(), Query{})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(page.Items))
	assert.Equal(t, 6, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, DefaultPageSize, page.PageSize)
}

func TestView_SearchMatchesNameOrDescription(t *testing.T) {
	byName := View(Seed(), Query{Search: "KEYBOARD"})
	assert.Equal(t, []string{"6"}, ids(byName.Items))

	byDescription := View(Seed(), Query{Search: "detak jantung"})
	assert.Equal(t, []string{"2"}, ids(byDescription.Items))

	none := View(Seed(), Query{Search: "toaster"})
	assert.Empty(t, none.Items)
	assert.Equal(t, 0, none.TotalPages)
}

func TestView_CategoryAndPriceSort(t *testing.T) {
	page := View(Seed(), Query{Category: "Gaming", Sort: SortPriceAsc, Page: 1})
	assert.Equal(t, []string{"5", "6"}, ids(page.Items))

	desc := View(Seed(), Query{Category: "Gaming", Sort: SortPriceDesc})
	assert.Equal(t, []string{"6", "5"}, ids(desc.Items))
}

func TestView_NameSort(t *testing.T) {
	products := []model.Product{
		{ID: "1", Name: "zebra"},
		{ID: "2", Name: "Apple"},
		{ID: "3", Name: "banana"},
	}
	page := View(products, Query{Sort: SortNameAsc})
	assert.Equal(t, []string{"2", "3", "1"}, ids(page.Items))
}

func TestView_PriceSortIsStable(t *testing.T) {
	products := []model.Product{
		{ID: "a", Price: 10},
		{ID: "b", Price: 5},
		{ID: "c", Price: 10},
	}
	page := View(products, Query{Sort: SortPriceAsc})
	assert.Equal(t, []string{"b", "a", "c"}, ids(page.Items))
}

func TestView_Pagination(t *testing.T) {
	products := make([]model.Product, 0, 14)
	for i := range 14 {
		products = append(products, model.Product{ID: string(rune('a' + i)), Category: "x"})
	}

	first := View(products, Query{PageSize: 6, Page: 1})
	assert.Len(t, first.Items, 6)
	assert.Equal(t, 3, first.TotalPages)

	last := View(products, Query{PageSize: 6, Page: 3})
	assert.Equal(t, []string{"m", "n"}, ids(last.Items))

	beyond := View(products, Query{PageSize: 6, Page: 4})
	assert.Empty(t, beyond.Items)
	assert.NotNil(t, beyond.Items)
}

func TestView_SecondPageOfFourMatchesIsEmpty(t *testing.T) {
	products := []model.Product{
		{ID: "1", Category: "Gaming", Price: 40},
		{ID: "2", Category: "Audio", Price: 10},
		{ID: "3", Category: "Gaming", Price: 30},
		{ID: "4", Category: "Gaming", Price: 20},
		{ID: "5", Category: "Gaming", Price: 10},
	}
	first := View(products, Query{Category: "Gaming", Sort: SortPriceAsc, Page: 1})
	assert.Equal(t, []string{"5", "4", "3", "1"}, ids(first.Items))

	second := View(products, Query{Category: "Gaming", Sort: SortPriceAsc, Page: 2})
	assert.Empty(t, second.Items)
}

func TestView_DoesNotMutateInput(t *testing.T) {
	products := Seed()
	View(products, Query{Sort: SortPriceDesc})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(products))
}

func TestParseSort(t *testing.T) {
	for _, key := range []string{"", "price_asc", "price_desc", "name_asc"} {
		s, err := ParseSort(key)
		require.NoError(t, err)
		assert.Equal(t, key, string(s))
	}

	_, err := ParseSort("rating")
	assert.Error(t, err)
}

func TestSort_NextWraps(t *testing.T) {
	assert.Equal(t, SortPriceAsc, SortNone.Next())
	assert.Equal(t, SortNone, SortNameAsc.Next())
}
