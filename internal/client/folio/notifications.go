package folio

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"folioboard/internal/models"
)

func (c *Client) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := url.Values{}
	if unreadOnly {
		query.Set("unread_only", "true")
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var out []models.Notification
	if err := c.getJSON(ctx, "/notifications", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.getJSON(ctx, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id uint64) error {
	return c.postJSON(ctx, fmt.Sprintf("/notifications/%d/read", id), nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.postJSON(ctx, "/notifications/read-all", nil, nil)
}

func (c *Client) DeleteNotification(ctx context.Context, id uint64) error {
	return c.delete(ctx, fmt.Sprintf("/notifications/%d", id))
}
