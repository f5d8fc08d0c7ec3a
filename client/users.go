package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
)

// GetProfile fetches a public profile. token may be empty.
func (c *Client) GetProfile(ctx context.Context, token string, userID uint) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", userID), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/api/users/profile", nil, token, update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeactivateAccount(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/profile", nil, token, nil, nil)
}

func (c *Client) Follow(ctx context.Context, token string, userID uint) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/follow", userID), nil, token, nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, token string, userID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/users/%d/follow", userID), nil, token, nil, nil)
}

func (c *Client) Connect(ctx context.Context, token string, userID uint) (*models.Connection, error) {
	var out models.Connection
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/users/%d/connect", userID), nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AcceptConnection(ctx context.Context, token string, connectionID uint) (*models.Connection, error) {
	var out models.Connection
	path := fmt.Sprintf("/api/users/connections/%d/accept", connectionID)
	if err := c.do(ctx, http.MethodPut, path, nil, token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListConnections filters by status unless it is empty.
func (c *Client) ListConnections(ctx context.Context, token string, status models.ConnectionStatus) ([]ConnectionEntry, error) {
	q := url.Values{}
	if status != "" {
		q.Set("status", string(status))
	}
	var out []ConnectionEntry
	err := c.do(ctx, http.MethodGet, "/api/users/connections", q, token, nil, &out)
	return out, err
}
