package folio

import (
	"context"

	"folioboard/internal/models"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	var out TokenResponse
	if err := c.postJSON(ctx, "/auth/login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	var out models.User
	if err := c.postJSON(ctx, "/auth/register", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	return c.postJSON(ctx, "/auth/verify", map[string]string{"token": token}, nil)
}

func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return c.postJSON(ctx, "/auth/password-reset/request", map[string]string{"email": email}, nil)
}

func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.postJSON(ctx, "/auth/password-reset/confirm", map[string]string{
		"token":        token,
		"new_password": newPassword,
	}, nil)
}

// CurrentUser resolves the user behind the context token.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.getJSON(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
