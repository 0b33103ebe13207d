package catalog

import (
	"context"
	"errors"
	"testing"
	"time"
)

// mockFetcher counts calls and returns configurable results.
type mockFetcher struct {
	calls int
	page  *Page
	err   error
}

func (m *mockFetcher) Products(_ context.Context, _ Query) (*Page, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

func TestCacheHitWithinTTL(t *testing.T) {
	mock := &mockFetcher{page: &Page{Total: 3}}
	c := NewCache(mock, time.Minute)

	q := Query{Search: "lamp", SortBy: "title", Order: "asc", Limit: 100}
	for i := 0; i < 3; i++ {
		page, err := c.Products(context.Background(), q)
		if err != nil {
			t.Fatal(err)
		}
		if page.Total != 3 {
			t.Errorf("total = %d, want 3", page.Total)
		}
	}
	if mock.calls != 1 {
		t.Errorf("fetcher calls = %d, want 1", mock.calls)
	}
}

func TestCacheKeyIsFullQueryTuple(t *testing.T) {
	mock := &mockFetcher{page: &Page{}}
	c := NewCache(mock, time.Minute)

	q := Query{Search: "lamp", Limit: 100}
	if _, err := c.Products(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	q.Skip = 20
	if _, err := c.Products(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	if mock.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2 (distinct tuples)", mock.calls)
	}
}

func TestCacheExpiry(t *testing.T) {
	mock := &mockFetcher{page: &Page{}}
	c := NewCache(mock, time.Minute)

	clock := time.Now()
	c.now = func() time.Time { return clock }

	q := Query{Limit: 100}
	if _, err := c.Products(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	clock = clock.Add(2 * time.Minute)
	if _, err := c.Products(context.Background(), q); err != nil {
		t.Fatal(err)
	}
	if mock.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2 after expiry", mock.calls)
	}
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	mock := &mockFetcher{err: errors.New("boom")}
	c := NewCache(mock, time.Minute)

	q := Query{Limit: 100}
	if _, err := c.Products(context.Background(), q); err == nil {
		t.Fatal("expected error")
	}
	mock.err = nil
	mock.page = &Page{}
	if _, err := c.Products(context.Background(), q); err != nil {
		t.Fatalf("retry after error failed: %v", err)
	}
	if mock.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2", mock.calls)
	}
}

func TestInvalidate(t *testing.T) {
	mock := &mockFetcher{page: &Page{}}
	c := NewCache(mock, time.Minute)

	q := Query{Limit: 100}
	_, _ = c.Products(context.Background(), q)
	c.Invalidate()
	_, _ = c.Products(context.Background(), q)
	if mock.calls != 2 {
		t.Errorf("fetcher calls = %d, want 2 after Invalidate", mock.calls)
	}
}
