package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/fyndhq/fynd/internal/catalog"
	"github.com/fyndhq/fynd/internal/filter"
)

type scriptedFetcher struct {
	pages []*catalog.Page
	errs  []error
	calls []catalog.Query
}

func (f *scriptedFetcher) Products(_ context.Context, q catalog.Query) (*catalog.Page, error) {
	f.calls = append(f.calls, q)
	i := len(f.calls) - 1
	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if i < len(f.pages) {
		return f.pages[i], nil
	}
	return f.pages[len(f.pages)-1], nil
}

func samplePage() *catalog.Page {
	return &catalog.Page{
		Products: []catalog.Product{
			{ID: 1, Title: "Denim Jacket", Category: "mens-shirts", Price: 40, DiscountPercentage: 12, Rating: 4.5, AvailabilityStatus: catalog.InStock},
			{ID: 2, Title: "Motorcycle", Category: "vehicle", Price: 9000, Rating: 4.9, AvailabilityStatus: catalog.InStock},
			{ID: 3, Title: "Sunglasses", Category: "sunglasses", Price: 19, Rating: 3.1, AvailabilityStatus: catalog.LowStock},
		},
		Total: 3,
	}
}

func TestControllerNarrowsServerResults(t *testing.T) {
	f := &scriptedFetcher{pages: []*catalog.Page{samplePage()}}
	c := NewController(f, 20)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	got := c.Visible()
	if len(got) != 2 {
		t.Fatalf("visible = %d products, want 2 (vehicle excluded)", len(got))
	}
	for _, p := range got {
		if p.Category == "vehicle" {
			t.Fatalf("excluded category leaked into visible list: %+v", p)
		}
	}
	if c.Total() != 3 {
		t.Errorf("Total = %d, want server total 3", c.Total())
	}
}

func TestControllerRecomputesOnlyOnChange(t *testing.T) {
	f := &scriptedFetcher{pages: []*catalog.Page{samplePage()}}
	c := NewController(f, 20)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	c.Visible()
	c.Visible()
	c.Visible()
	if c.recomputes != 1 {
		t.Fatalf("recomputes = %d after repeated reads, want 1", c.recomputes)
	}

	c.Update(func(crit *filter.Criteria) { crit.OnSale = true })
	if got := c.Visible(); len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("on-sale narrowing produced %v", got)
	}
	c.Visible()
	if c.recomputes != 2 {
		t.Fatalf("recomputes = %d after one criteria change, want 2", c.recomputes)
	}
}

func TestControllerFilterChangeRewindsPage(t *testing.T) {
	f := &scriptedFetcher{pages: []*catalog.Page{samplePage()}}
	c := NewController(f, 20)

	c.Update(func(crit *filter.Criteria) { crit.Page = 3 })
	if got := c.Criteria().Page; got != 3 {
		t.Fatalf("paging alone rewound page: got %d, want 3", got)
	}

	c.Update(func(crit *filter.Criteria) { crit.Search = "jacket" })
	if got := c.Criteria().Page; got != 0 {
		t.Fatalf("search change kept page %d, want 0", got)
	}
}

func TestControllerServerQueryUsesPageOffset(t *testing.T) {
	f := &scriptedFetcher{pages: []*catalog.Page{samplePage()}}
	c := NewController(f, 20)

	c.Update(func(crit *filter.Criteria) { crit.Search = "shoes" })
	c.Update(func(crit *filter.Criteria) { crit.Page = 2 })
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	q := f.calls[len(f.calls)-1]
	if q.Search != "shoes" || q.Skip != 40 || q.Limit != 20 {
		t.Fatalf("server query = %+v, want search=shoes skip=40 limit=20", q)
	}
}

func TestControllerKeepsErrorUntilRetry(t *testing.T) {
	boom := errors.New("upstream down")
	f := &scriptedFetcher{
		pages: []*catalog.Page{nil, samplePage()},
		errs:  []error{boom, nil},
	}
	c := NewController(f, 20)

	if err := c.Refresh(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("Refresh error = %v, want %v", err, boom)
	}
	if c.Err() == nil {
		t.Fatal("Err() cleared before retry")
	}
	if c.Visible() != nil {
		t.Fatal("visible list non-nil before any successful fetch")
	}

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("retry Refresh: %v", err)
	}
	if c.Err() != nil {
		t.Fatalf("Err() = %v after successful retry, want nil", c.Err())
	}
	if len(c.Visible()) == 0 {
		t.Fatal("no visible products after successful retry")
	}
}
