package folio

import (
	"context"
	"fmt"
	"net/url"

	"folioboard/internal/models"
)

func (c *Client) SearchAssets(ctx context.Context, q string) ([]models.Asset, error) {
	query := url.Values{}
	query.Set("q", q)
	var out []models.Asset
	if err := c.getJSON(ctx, "/assets/search", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type AssetRequest struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	AssetType string `json:"asset_type"`
	Currency  string `json:"currency"`
}

func (c *Client) CreateAsset(ctx context.Context, req AssetRequest) (*models.Asset, error) {
	var out models.Asset
	if err := c.postJSON(ctx, "/assets", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// LogoHints narrows the logo lookup when the plain asset query misses.
type LogoHints struct {
	Name      string
	AssetType string
}

// ResolveLogo returns a logo URL for the asset. Hints are only sent when
// set; callers retry once with hints after a plain miss and give up after
// that (the image is hidden, never shown broken).
func (c *Client) ResolveLogo(ctx context.Context, assetID uint64, hints *LogoHints) (string, error) {
	query := url.Values{}
	if hints != nil {
		if hints.Name != "" {
			query.Set("name", hints.Name)
		}
		if hints.AssetType != "" {
			query.Set("type", hints.AssetType)
		}
	}
	var out struct {
		URL string `json:"url"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/assets/%d/logo", assetID), query, &out); err != nil {
		return "", err
	}
	if out.URL == "" {
		return "", fmt.Errorf("no logo for asset %d", assetID)
	}
	return out.URL, nil
}
