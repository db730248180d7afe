package folio

import (
	"context"
	"fmt"
	"net/url"

	"folioboard/internal/models"
)

func (c *Client) ListPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	var out []models.Portfolio
	if err := c.getJSON(ctx, "/portfolios", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPortfolio(ctx context.Context, id uint64) (*models.Portfolio, error) {
	var out models.Portfolio
	if err := c.getJSON(ctx, fmt.Sprintf("/portfolios/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type PortfolioRequest struct {
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
}

func (c *Client) CreatePortfolio(ctx context.Context, req PortfolioRequest) (*models.Portfolio, error) {
	var out models.Portfolio
	if err := c.postJSON(ctx, "/portfolios", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePortfolio(ctx context.Context, id uint64, req PortfolioRequest) (*models.Portfolio, error) {
	var out models.Portfolio
	if err := c.putJSON(ctx, fmt.Sprintf("/portfolios/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePortfolio(ctx context.Context, id uint64) error {
	return c.delete(ctx, fmt.Sprintf("/portfolios/%d", id))
}

func (c *Client) ListPositions(ctx context.Context, portfolioID uint64) ([]models.Position, error) {
	var out []models.Position
	if err := c.getJSON(ctx, fmt.Sprintf("/portfolios/%d/positions", portfolioID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSoldPositions(ctx context.Context, portfolioID uint64) ([]models.SoldPosition, error) {
	var out []models.SoldPosition
	if err := c.getJSON(ctx, fmt.Sprintf("/portfolios/%d/positions/sold", portfolioID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PortfolioHistory returns the aggregate value series for the requested
// period. The backend scopes the series server-side; switching periods is a
// refetch, never a client-side reslice.
func (c *Client) PortfolioHistory(ctx context.Context, portfolioID uint64, period string) ([]models.PortfolioHistoryPoint, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	var out []models.PortfolioHistoryPoint
	if err := c.getJSON(ctx, fmt.Sprintf("/portfolios/%d/history", portfolioID), query, &out); err != nil {
		return nil, err
	}
	return out, nil
}
