package folio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"folioboard/internal/models"
)

type ListTransactionsParams struct {
	PortfolioID uint64
	AssetID     *uint64
	Limit       int
	Offset      int
}

func (c *Client) ListTransactions(ctx context.Context, params ListTransactionsParams) ([]models.Transaction, error) {
	query := url.Values{}
	query.Set("portfolio_id", strconv.FormatUint(params.PortfolioID, 10))
	if params.AssetID != nil {
		query.Set("asset_id", strconv.FormatUint(*params.AssetID, 10))
	}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.Offset > 0 {
		query.Set("offset", strconv.Itoa(params.Offset))
	}
	var out []models.Transaction
	if err := c.getJSON(ctx, "/transactions", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type TransactionRequest struct {
	PortfolioID uint64           `json:"portfolio_id"`
	AssetID     uint64           `json:"asset_id"`
	Type        string           `json:"type"`
	TxDate      string           `json:"tx_date"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Fees        *decimal.Decimal `json:"fees,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

func (c *Client) CreateTransaction(ctx context.Context, req TransactionRequest) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.postJSON(ctx, "/transactions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id uint64, req TransactionRequest) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.putJSON(ctx, fmt.Sprintf("/transactions/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id uint64) error {
	return c.delete(ctx, fmt.Sprintf("/transactions/%d", id))
}

type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}

// ImportTransactionsCSV streams a CSV file to the backend importer.
func (c *Client) ImportTransactionsCSV(ctx context.Context, portfolioID uint64, filename string, csvData io.Reader) (*ImportResult, error) {
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

	fullURL := fmt.Sprintf("%s/transactions/import?portfolio_id=%d", c.baseURL, portfolioID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(buf.String()))
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
