// Package shop coordinates the product listing view: it owns the current
// filter criteria, runs the server query through the catalog cache, and
// narrows the results with the client-side predicate pipeline.
package shop

import (
	"context"
	"sync"

	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/fyndhq/fynd/internal/filter"
)

// Controller drives one listing view. Criteria snapshots are immutable:
// every user filter action installs a new snapshot via Update, and the
// visible list is re-derived only when the snapshot or the server results
// actually change.
type Controller struct {
	cache    catalog.Fetcher
	pageSize int

	mu       sync.Mutex
	criteria filter.Criteria
	page     *catalog.Page
	err      error

	visible     []catalog.Product
	derivedFrom derivation
	recomputes  int // observed by tests
}

type derivation struct {
	page     *catalog.Page
	criteria filter.Criteria
}

// NewController creates a controller with default criteria.
func NewController(cache catalog.Fetcher, pageSize int) *Controller {
	return &Controller{
		cache:    cache,
		pageSize: pageSize,
		criteria: filter.Default(),
	}
}

// Criteria returns the current snapshot.
func (c *Controller) Criteria() filter.Criteria {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.criteria
}

// SetCriteria replaces the whole snapshot (used when opening a shared link).
func (c *Controller) SetCriteria(crit filter.Criteria) {
	c.mu.Lock()
	c.criteria = crit
	c.mu.Unlock()
}

// Update derives a new snapshot from the current one. Any change other
// than paging rewinds to the first page, matching how every filter action
// resets pagination.
func (c *Controller) Update(mutate func(*filter.Criteria)) {
	c.mu.Lock()
	next := c.criteria
	mutate(&next)
	if pageOnlyChange := next.Page != c.criteria.Page && samePageless(next, c.criteria); !pageOnlyChange && next != c.criteria {
		next.Page = 0
	}
	c.criteria = next
	c.mu.Unlock()
}

func samePageless(a, b filter.Criteria) bool {
	a.Page = 0
	b.Page = 0
	return a == b
}

// Refresh executes the server query for the current snapshot. Errors are
// retained for the view to render with a manual retry; they are never
// retried automatically.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	q := c.criteria.ServerQuery(c.pageSize)
	c.mu.Unlock()

	page, err := c.cache.Products(ctx, q)

	c.mu.Lock()
	c.err = err
	if err == nil {
		c.page = page
	}
	c.mu.Unlock()
	return err
}

// Err returns the last query error, nil after a successful Refresh.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Total returns the server-reported total for the active query.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == nil {
		return 0
	}
	return c.page.Total
}

// Visible returns the derived product list: server results narrowed by the
// client-only predicates. The list is recomputed only when the results or
// the criteria changed since the last call.
func (c *Controller) Visible() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.page == nil {
		return nil
	}
	if c.derivedFrom.page != c.page || c.derivedFrom.criteria != c.criteria {
		c.visible = filter.Apply(c.page.Products, c.criteria)
		c.derivedFrom = derivation{page: c.page, criteria: c.criteria}
		c.recomputes++
	}
	return c.visible
}
