package folio

import (
	"context"
	"fmt"
	"net/url"

	"folioboard/internal/models"
)

// PriceHistory returns the asset's price series for the requested period,
// scoped server-side.
func (c *Client) PriceHistory(ctx context.Context, assetID uint64, period string) ([]models.PricePoint, error) {
	query := url.Values{}
	if period != "" {
		query.Set("period", period)
	}
	var out []models.PricePoint
	if err := c.getJSON(ctx, fmt.Sprintf("/assets/%d/prices", assetID), query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListSplits(ctx context.Context, assetID uint64) ([]models.StockSplit, error) {
	var out []models.StockSplit
	if err := c.getJSON(ctx, fmt.Sprintf("/assets/%d/splits", assetID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PriceHealth(ctx context.Context) ([]models.PriceHealth, error) {
	var out []models.PriceHealth
	if err := c.getJSON(ctx, "/prices/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FXRate returns today's spot rate for one currency pair.
func (c *Client) FXRate(ctx context.Context, from, to string) (*models.FXRate, error) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	var out models.FXRate
	if err := c.getJSON(ctx, "/fx/rate", query, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
