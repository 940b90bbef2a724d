package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/nhle/taskshop/internal/model"
)

// DefaultPageSize is the number of products per catalog page.
const DefaultPageSize = 6

// Sort orders a catalog view.
type Sort string

const (
	SortNone      Sort = ""
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
	SortNameAsc   Sort = "name_asc"
)

// Sorts lists the sort options in the order the sort selector cycles them.
var Sorts = []Sort{SortNone, SortPriceAsc, SortPriceDesc, SortNameAsc}

// ParseSort maps a sort key to a Sort.
func ParseSort(key string) (Sort, error) {
	for _, s := range Sorts {
		if string(s) == key {
			return s, nil
		}
	}
	return SortNone, fmt.Errorf("unknown sort %q", key)
}

// Label is the human-readable sort name.
func (s Sort) Label() string {
	switch s {
	case SortPriceAsc:
		return "Price: Low to High"
	case SortPriceDesc:
		return "Price: High to Low"
	case SortNameAsc:
		return "Name: A-Z"
	default:
		return "Default"
	}
}

// Next returns the sort after s in Sorts, wrapping around.
func (s Sort) Next() Sort {
	i := slices.Index(Sorts, s)
	return Sorts[(i+1)%len(Sorts)]
}

// Query is the full set of view inputs.
type Query struct {
	Search   string
	Category string
	Sort     Sort
	Page     int
	PageSize int
}

// Page is one page of a filtered, sorted product list.
type Page struct {
	Items      []model.Product
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// View filters, sorts and paginates products. The input slice is never
// modified.
func View(products []model.Product, q Query) Page {
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}

	matched := Filter(products, q.Search, q.Category)
	SortProducts(matched, q.Sort)

	total := len(matched)
	p := Page{
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: (total + size - 1) / size,
	}
	start := (page - 1) * size
	if start >= total {
		p.Items = []model.Product{}
		return p
	}
	end := min(start+size, total)
	p.Items = matched[start:end]
	return p
}

// Filter returns a new slice holding products whose name or description
// contains search (case-insensitively) and whose category matches. An empty
// search or the "all" category matches everything.
func Filter(products []model.Product, search, category string) []model.Product {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))

	out := make([]model.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != model.CategoryAll && p.Category != category {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(p.Name), needle) &&
			!strings.Contains(fold.String(p.Description), needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProducts orders products in place. Ties keep their relative order.
func SortProducts(products []model.Product, s Sort) {
	switch s {
	case SortPriceAsc:
		slices.SortStableFunc(products, func(a, b model.Product) int {
			return cmpInt64(a.Price, b.Price)
		})
	case SortPriceDesc:
		slices.SortStableFunc(products, func(a, b model.Product) int {
			return cmpInt64(b.Price, a.Price)
		})
	case SortNameAsc:
		c := collate.New(language.Und)
		slices.SortStableFunc(products, func(a, b model.Product) int {
			return c.CompareString(a.Name, b.Name)
		})
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
