package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"folioboard/internal/client/folio"
	"folioboard/internal/derive"
	"folioboard/internal/models"
)

type stubPortfolioAPI struct {
	portfolio *models.Portfolio
	positions []models.Position
	sold      []models.SoldPosition
	history   []models.PortfolioHistoryPoint
	txs       []models.Transaction
}

func (a *stubPortfolioAPI) GetPortfolio(ctx context.Context, id uint64) (*models.Portfolio, error) {
	return a.portfolio, nil
}

func (a *stubPortfolioAPI) ListPositions(ctx context.Context, portfolioID uint64) ([]models.Position, error) {
	return a.positions, nil
}

func (a *stubPortfolioAPI) ListSoldPositions(ctx context.Context, portfolioID uint64) ([]models.SoldPosition, error) {
	return a.sold, nil
}

func (a *stubPortfolioAPI) PortfolioHistory(ctx context.Context, portfolioID uint64, period string) ([]models.PortfolioHistoryPoint, error) {
	return a.history, nil
}

func (a *stubPortfolioAPI) ListTransactions(ctx context.Context, params folio.ListTransactionsParams) ([]models.Transaction, error) {
	return a.txs, nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestPositionTable(t *testing.T) {
	api := &stubPortfolioAPI{
		portfolio: &models.Portfolio{ID: 1, Name: "Main", BaseCurrency: "USD"},
		positions: []models.Position{
			{
				AssetID: 1, Symbol: "VOO", Currency: "USD",
				Quantity: dec("10"), AvgCost: dec("400"), CostBasis: dec("4000"),
				CurrentPrice: decPtr("450"), MarketValue: decPtr("4500"),
				UnrealizedPnL: decPtr("500"), UnrealizedPnLPct: decPtr("12.5"),
			},
			{
				AssetID: 2, Symbol: "PRIV", Currency: "USD",
				Quantity: dec("5"), AvgCost: dec("100"), CostBasis: dec("500"),
			},
		},
	}
	svc := &PositionViewService{API: api, Sorter: derive.NewSorter("en")}

	view, err := svc.Table(context.Background(), 1, derive.SortState{Key: derive.PosKeyMarketValue, Dir: derive.Desc})
	if err != nil {
		t.Fatalf("table: %v", err)
	}

	if view.BaseCurrency != "USD" {
		t.Fatalf("base currency = %q", view.BaseCurrency)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("rows = %d", len(view.Rows))
	}
	// Priced row first under market_value desc; nulls sort last.
	if view.Rows[0].Symbol != "VOO" || view.Rows[1].Symbol != "PRIV" {
		t.Fatalf("order = %s, %s", view.Rows[0].Symbol, view.Rows[1].Symbol)
	}

	voo := view.Rows[0]
	if voo.MarketValueFmt != "$4,500.00" {
		t.Fatalf("market value fmt = %q", voo.MarketValueFmt)
	}
	if voo.UnrealizedFmt != "+$500.00" {
		t.Fatalf("pnl fmt = %q", voo.UnrealizedFmt)
	}
	if voo.WalletPctFmt != "100.00%" {
		t.Fatalf("wallet pct fmt = %q", voo.WalletPctFmt)
	}

	priv := view.Rows[1]
	if priv.CurrentPriceFmt != "N/A" || priv.MarketValueFmt != "N/A" {
		t.Fatalf("unpriced cells = %q / %q, want N/A", priv.CurrentPriceFmt, priv.MarketValueFmt)
	}
	if priv.UnrealizedPctFmt != "-" {
		t.Fatalf("missing pct = %q, want -", priv.UnrealizedPctFmt)
	}

	if view.Totals.MarketValueFmt != "$4,500.00" {
		t.Fatalf("totals market value = %q", view.Totals.MarketValueFmt)
	}
	if view.Totals.CostBasisFmt != "$4,500.00" {
		t.Fatalf("totals cost basis = %q", view.Totals.CostBasisFmt)
	}
	if view.Totals.UnpricedRows != 1 {
		t.Fatalf("unpriced rows = %d", view.Totals.UnpricedRows)
	}
}

func TestTransactionTable(t *testing.T) {
	api := &stubPortfolioAPI{
		txs: []models.Transaction{
			{
				ID: 1, Symbol: "AAPL", Type: models.TxTypeBuy, TxDate: "2024-01-10",
				Quantity: dec("10"), AdjustedQuantity: dec("40"),
				Price: decPtr("150"), Fees: decPtr("1"),
			},
			{
				ID: 2, Symbol: "AAPL", Type: models.TxTypeSell, TxDate: "2024-06-01",
				Quantity: dec("5"), AdjustedQuantity: dec("5"),
				Price: decPtr("180"),
			},
		},
	}
	svc := &TransactionViewService{API: api, Sorter: derive.NewSorter("en")}

	view, err := svc.Table(context.Background(), folio.ListTransactionsParams{PortfolioID: 1}, "USD",
		derive.SortState{Key: derive.TxKeyDate, Dir: derive.Desc})
	if err != nil {
		t.Fatalf("table: %v", err)
	}
	if len(view.Rows) != 2 {
		t.Fatalf("rows = %d", len(view.Rows))
	}
	if view.Rows[0].ID != 2 {
		t.Fatalf("newest first, got id %d", view.Rows[0].ID)
	}

	sell := view.Rows[0]
	if sell.SplitAdjusted {
		t.Fatalf("unadjusted row flagged")
	}
	if sell.AdjustedQuantityFmt != "" {
		t.Fatalf("adjusted quantity shown for unadjusted row: %q", sell.AdjustedQuantityFmt)
	}
	if sell.TotalFmt != "$900.00" {
		t.Fatalf("sell total = %q", sell.TotalFmt)
	}

	buy := view.Rows[1]
	if !buy.SplitAdjusted {
		t.Fatalf("split row not flagged")
	}
	if buy.AdjustedQuantityFmt != "40" {
		t.Fatalf("adjusted quantity = %q", buy.AdjustedQuantityFmt)
	}
	if buy.TotalFmt != "$1,501.00" {
		t.Fatalf("buy total = %q", buy.TotalFmt)
	}
}
