package client

import (
	"context"
	"net/http"
)

// Search kind is "all", "users" or "posts"; empty means all.
func (c *Client) Search(ctx context.Context, token, query, kind string, page, limit int) (*SearchResults, error) {
	q := pageQuery(page, limit)
	q.Set("q", query)
	if kind != "" {
		q.Set("type", kind)
	}
	var out SearchResults
	if err := c.do(ctx, http.MethodGet, "/api/search", q, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Trending(ctx context.Context) ([]TrendingQuery, error) {
	var out []TrendingQuery
	err := c.do(ctx, http.MethodGet, "/api/search/trending", nil, "", nil, &out)
	return out, err
}
