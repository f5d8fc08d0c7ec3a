package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Nir-Bhay/LinkedIn-clone/internal/models"
)

// Notifications lists one page; zero page or limit uses the server default.
func (c *Client) Notifications(ctx context.Context, token string, page, limit int) (*models.NotificationPage, error) {
	var out models.NotificationPage
	if err := c.do(ctx, http.MethodGet, "/api/notifications", pageQuery(page, limit), token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/api/notifications/%d/read", id), nil, token, nil, nil)
}

// MarkAllNotificationsRead returns how many notifications changed state.
func (c *Client) MarkAllNotificationsRead(ctx context.Context, token string) (int64, error) {
	var out message
	if err := c.do(ctx, http.MethodPut, "/api/notifications/mark-all-read", nil, token, nil, &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}

func (c *Client) DeleteNotification(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/notifications/%d", id), nil, token, nil, nil)
}
