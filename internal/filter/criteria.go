package filter

import (
	"slices"

	"github.com/fyndhq/fynd/internal/catalog"
)

// Sort fields accepted by the catalog API.
var ValidSorts = []string{"price", "title", "rating"}

// PriceRange buckets for the client-side price predicate.
const (
	PriceAny     = ""
	PriceUnder25 = "under25"
	Price25to50  = "25to50"
	Price50to100 = "50to100"
	PriceOver100 = "over100"
)

// ValidPriceRanges enumerates the accepted non-default price buckets.
var ValidPriceRanges = []string{PriceUnder25, Price25to50, Price50to100, PriceOver100}

// ValidConditions enumerates the accepted stock-condition values.
var ValidConditions = []string{catalog.InStock, catalog.LowStock, catalog.OutOfStock}

// Criteria is an immutable snapshot of every active filter/sort/page
// parameter describing one view of the catalog. Server-executable fields
// travel to the API; the rest are evaluated locally by Apply.
type Criteria struct {
	// Server-executable.
	Search   string
	Category string
	Sort     string
	Order    string
	Page     int

	// Client-only predicates.
	OnSale     bool
	PriceRange string
	Condition  string
	MinRating  int
}

// Default returns the documented default criteria: empty search/category,
// first page, title ascending, no client predicates.
func Default() Criteria {
	return Criteria{Sort: "title", Order: "asc"}
}

// ServerQuery maps the server-executable subset to a catalog query.
// Skip is always Page*pageSize; an unknown sort field falls back to title.
func (c Criteria) ServerQuery(pageSize int) catalog.Query {
	sort := c.Sort
	if !slices.Contains(ValidSorts, sort) {
		sort = "title"
	}
	order := c.Order
	if order != "desc" {
		order = "asc"
	}
	return catalog.Query{
		Search:   c.Search,
		Category: c.Category,
		SortBy:   sort,
		Order:    order,
		Limit:    pageSize,
		Skip:     c.Page * pageSize,
	}
}
