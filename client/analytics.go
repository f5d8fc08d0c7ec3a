package client

import (
	"context"
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
)

// Dashboard requires an admin token.
func (c *Client) Dashboard(ctx context.Context, token string) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.do(ctx, http.MethodGet, "/api/analytics/dashboard", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) PersonalAnalytics(ctx context.Context, token string) (*models.PersonalAnalytics, error) {
	var out models.PersonalAnalytics
	if err := c.do(ctx, http.MethodGet, "/api/analytics/personal", nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
