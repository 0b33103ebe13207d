// Package urlstate maps filter criteria to and from shareable query
// strings. Encoding omits default-valued fields so links stay canonical;
// decoding substitutes the default for any absent or malformed field
// individually, never rejecting the whole navigation.
package urlstate

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/fyndhq/fynd/internal/filter"
)

// Encode serializes criteria to a canonical query string. All-default
// criteria encode to the empty string.
func Encode(c filter.Criteria) string {
	def := filter.Default()
	var parts []string
	add := func(key, value string) {
		parts = append(parts, key+"="+url.QueryEscape(value))
	}

	if c.Search != def.Search {
		add("q", c.Search)
	}
	if c.Category != def.Category {
		add("category", c.Category)
	}
	if c.Page != def.Page {
		add("page", strconv.Itoa(c.Page))
	}
	if c.Sort != def.Sort {
		add("sort", c.Sort)
	}
	if c.Order != def.Order {
		add("order", c.Order)
	}
	if c.OnSale {
		add("onSale", "true")
	}
	if c.PriceRange != def.PriceRange {
		add("priceRange", c.PriceRange)
	}
	if c.Condition != def.Condition {
		add("condition", c.Condition)
	}
	if c.MinRating != def.MinRating {
		add("minRating", strconv.Itoa(c.MinRating))
	}
	return strings.Join(parts, "&")
}

// Decode parses criteria from query values. Each field falls back to its
// default independently when absent, malformed, or out of enum.
func Decode(values url.Values) filter.Criteria {
	c := filter.Default()

	c.Search = values.Get("q")
	c.Category = values.Get("category")

	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		c.Page = page
	}
	if sort := values.Get("sort"); slices.Contains(filter.ValidSorts, sort) {
		c.Sort = sort
	}
	if values.Get("order") == "desc" {
		c.Order = "desc"
	}
	c.OnSale = values.Get("onSale") == "true"
	if pr := values.Get("priceRange"); slices.Contains(filter.ValidPriceRanges, pr) {
		c.PriceRange = pr
	}
	if cond := values.Get("condition"); slices.Contains(filter.ValidConditions, cond) {
		c.Condition = cond
	}
	if r, err := strconv.Atoi(values.Get("minRating")); err == nil && r >= 1 && r <= 5 {
		c.MinRating = r
	}
	return c
}

// ShareURL builds the absolute shareable link for the given criteria.
func ShareURL(webBase string, c filter.Criteria) string {
	qs := Encode(c)
	if qs == "" {
		return webBase
	}
	if strings.Contains(webBase, "?") {
		return webBase + "&" + qs
	}
	return webBase + "?" + qs
}
