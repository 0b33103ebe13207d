package filter

import "github.com/fyndhq/fynd/internal/catalog"

// ExcludedCategories are dropped from the "all products" view (and the
// sidebar) but remain reachable through a direct category browse.
var ExcludedCategories = map[string]bool{
	"vehicle":   true,
	"groceries": true,
}

// Apply narrows server results with the client-only predicates. All
// predicates are AND-combined; a record must pass every active one.
// The function is pure: input order is preserved, records are never
// mutated, and applying the same criteria twice is idempotent.
func Apply(records []catalog.Product, c Criteria) []catalog.Product {
	out := make([]catalog.Product, 0, len(records))
	for _, p := range records {
		if !passes(p, c) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func passes(p catalog.Product, c Criteria) bool {
	if c.Category == "" && ExcludedCategories[p.Category] {
		return false
	}
	if c.OnSale && !(p.DiscountPercentage > 0) {
		return false
	}
	if c.Condition != "" && p.AvailabilityStatus != c.Condition {
		return false
	}
	if c.MinRating > 0 && p.Rating < float64(c.MinRating) {
		return false
	}
	switch c.PriceRange {
	case PriceUnder25:
		return p.Price < 25
	case Price25to50:
		return p.Price >= 25 && p.Price <= 50
	case Price50to100:
		return p.Price >= 50 && p.Price <= 100
	case PriceOver100:
		return p.Price > 100
	}
	return true
}
