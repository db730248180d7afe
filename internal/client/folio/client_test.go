package folio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	ctx := WithToken(context.Background(), "tok-123")
	if _, err := c.ListPortfolios(ctx); err != nil {
		t.Fatalf("list portfolios: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("authorization header = %q, want %q", gotAuth, "Bearer tok-123")
	}
}

func TestAnonymousWithoutToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	if _, err := c.ListPortfolios(context.Background()); err != nil {
		t.Fatalf("list portfolios: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no authorization header, got %q", gotAuth)
	}
}

func TestNoContentIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	if err := c.DeleteTransaction(context.Background(), 42); err != nil {
		t.Fatalf("delete on 204: %v", err)
	}
}

func TestStringDetailError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"portfolio not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.GetPortfolio(context.Background(), 9)
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", apiErr.Status)
	}
	if apiErr.Detail != "portfolio not found" {
		t.Fatalf("detail = %q", apiErr.Detail)
	}
}

func TestStructuredDetailError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":[{"loc":["body","quantity"],"msg":"quantity must be positive"},{"loc":["body","tx_date"],"msg":"invalid date"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	_, err := c.CreateTransaction(context.Background(), TransactionRequest{})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	want := "quantity must be positive; invalid date"
	if apiErr.Detail != want {
		t.Fatalf("detail = %q, want %q", apiErr.Detail, want)
	}
}

func TestDecodeTypedList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/portfolios/3/positions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`[{"asset_id":7,"symbol":"VWCE","quantity":"10.5","avg_cost":"98.2","cost_basis":"1031.1","current_price":null,"market_value":null,"currency":"EUR","asset_type":"etf"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	positions, err := c.ListPositions(context.Background(), 3)
	if err != nil {
		t.Fatalf("list positions: %v", err)
	}
	if len(positions) != 1 {
		t.Fatalf("len = %d, want 1", len(positions))
	}
	p := positions[0]
	if p.Symbol != "VWCE" || !p.Quantity.Equal(decimalFromString(t, "10.5")) {
		t.Fatalf("unexpected position %+v", p)
	}
	if p.CurrentPrice != nil || p.MarketValue != nil {
		t.Fatalf("null pricing fields should decode to nil")
	}
}

func TestResolveLogoHints(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "Vanguard FTSE" {
			t.Errorf("name hint missing, query=%v", r.URL.Query())
		}
		_, _ = w.Write([]byte(`{"url":"https://logos.example/vwce.png"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL)
	url, err := c.ResolveLogo(context.Background(), 7, &LogoHints{Name: "Vanguard FTSE", AssetType: "etf"})
	if err != nil {
		t.Fatalf("resolve logo: %v", err)
	}
	if url != "https://logos.example/vwce.png" {
		t.Fatalf("url = %q", url)
	}
}
