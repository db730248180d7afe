package folio

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"folioboard/internal/models"
)

func (c *Client) ListPendingDividends(ctx context.Context, portfolioID uint64) ([]models.PendingDividend, error) {
	var out []models.PendingDividend
	if err := c.getJSON(ctx, fmt.Sprintf("/portfolios/%d/dividends/pending", portfolioID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) DividendStats(ctx context.Context, portfolioID uint64) (*models.DividendStats, error) {
	var out models.DividendStats
	if err := c.getJSON(ctx, fmt.Sprintf("/portfolios/%d/dividends/stats", portfolioID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type AcceptDividendRequest struct {
	WithholdingTax decimal.Decimal `json:"withholding_tax"`
	Notes          string          `json:"notes,omitempty"`
}

func (c *Client) AcceptDividend(ctx context.Context, dividendID uint64, req AcceptDividendRequest) error {
	return c.postJSON(ctx, fmt.Sprintf("/dividends/%d/accept", dividendID), req, nil)
}

func (c *Client) RejectDividend(ctx context.Context, dividendID uint64) error {
	return c.postJSON(ctx, fmt.Sprintf("/dividends/%d/reject", dividendID), nil, nil)
}

// FetchDividends asks the backend to re-detect pending dividends now.
func (c *Client) FetchDividends(ctx context.Context, portfolioID uint64) error {
	return c.postJSON(ctx, fmt.Sprintf("/portfolios/%d/dividends/fetch", portfolioID), nil, nil)
}
