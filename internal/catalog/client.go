package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// APIError is returned for non-2xx catalog responses.
type APIError struct {
	Status int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog request failed: %d %s", e.Status, http.StatusText(e.Status))
}

// Client talks to the marketplace catalog API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a catalog client for the given API root.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Products issues the server-side query for a page of products. Query shape
// precedence: a non-empty Search wins over Category (the search endpoint is
// not category-scoped); a non-empty Category scopes the listing; otherwise
// the unscoped listing is used. All three carry limit/skip/sortBy/order.
func (c *Client) Products(ctx context.Context, q Query) (*Page, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(q.Limit))
	params.Set("skip", strconv.Itoa(q.Skip))
	params.Set("sortBy", q.SortBy)
	params.Set("order", q.Order)

	var path string
	switch {
	case q.Search != "":
		params.Set("q", q.Search)
		path = "/products/search"
	case q.Category != "":
		path = "/products/category/" + url.PathEscape(q.Category)
	default:
		path = "/products"
	}

	var page Page
	if err := c.getJSON(ctx, path+"?"+params.Encode(), "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Product fetches a single record by id.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := c.getJSON(ctx, fmt.Sprintf("/products/%d", id), "", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) getJSON(ctx context.Context, path, bearer string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("catalog get %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
