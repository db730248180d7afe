package folio

import (
	"context"
	"fmt"

	"folioboard/internal/models"
)

func (c *Client) AdminListUsers(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.getJSON(ctx, "/admin/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AdminUpdateUserRole(ctx context.Context, userID uint64, role string) (*models.User, error) {
	var out models.User
	if err := c.putJSON(ctx, fmt.Sprintf("/admin/users/%d/role", userID), map[string]string{"role": role}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminDeleteUser(ctx context.Context, userID uint64) error {
	return c.delete(ctx, fmt.Sprintf("/admin/users/%d", userID))
}

func (c *Client) AdminEmailConfig(ctx context.Context) (*models.EmailConfig, error) {
	var out models.EmailConfig
	if err := c.getJSON(ctx, "/admin/email-config", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AdminUpdateEmailConfig(ctx context.Context, cfg models.EmailConfig) error {
	return c.putJSON(ctx, "/admin/email-config", cfg, nil)
}

func (c *Client) AdminSendTestEmail(ctx context.Context, to string) error {
	return c.postJSON(ctx, "/admin/email-config/test", map[string]string{"to": to}, nil)
}
