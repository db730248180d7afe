package folio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"folioboard/internal/models"
)

func (c *Client) ListWatchlist(ctx context.Context) ([]models.WatchlistEntry, error) {
	var out []models.WatchlistEntry
	if err := c.getJSON(ctx, "/watchlist", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type WatchlistRequest struct {
	AssetID     uint64           `json:"asset_id"`
	TargetPrice *decimal.Decimal `json:"target_price,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

func (c *Client) AddWatchlistEntry(ctx context.Context, req WatchlistRequest) (*models.WatchlistEntry, error) {
	var out models.WatchlistEntry
	if err := c.postJSON(ctx, "/watchlist", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateWatchlistEntry(ctx context.Context, id uint64, req WatchlistRequest) (*models.WatchlistEntry, error) {
	var out models.WatchlistEntry
	if err := c.putJSON(ctx, fmt.Sprintf("/watchlist/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RemoveWatchlistEntry(ctx context.Context, id uint64) error {
	return c.delete(ctx, fmt.Sprintf("/watchlist/%d", id))
}

func (c *Client) ImportWatchlistCSV(ctx context.Context, filename string, csvData io.Reader) (*ImportResult, error) {
	var buf strings.Builder
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, csvData); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/watchlist/import", strings.NewReader(buf.String()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token := TokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Status: resp.StatusCode, Detail: decodeDetail(body)}
	}
	var out ImportResult
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportWatchlistCSV returns the raw CSV produced by the backend.
func (c *Client) ExportWatchlistCSV(ctx context.Context) ([]byte, error) {
	return c.doRequest(ctx, http.MethodGet, "/watchlist/export", nil, nil)
}
