// Package service assembles backend data into ready-to-render dashboard
// views: sorted tables with formatted cells, chart datasets with gain
// figures, and the dividend confirmation workflow. Services hold no
// portfolio state of their own; every call goes back to the backend API.
package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"folioboard/internal/derive"
	"folioboard/internal/models"
)

type positionAPI interface {
	GetPortfolio(ctx context.Context, id uint64) (*models.Portfolio, error)
	ListPositions(ctx context.Context, portfolioID uint64) ([]models.Position, error)
	ListSoldPositions(ctx context.Context, portfolioID uint64) ([]models.SoldPosition, error)
}

// PositionRow is one rendered holdings row: the backend DTO plus the
// derived wallet share and the display strings for every numeric cell.
type PositionRow struct {
	models.Position
	WalletPct        decimal.Decimal `json:"wallet_pct"`
	QuantityFmt      string          `json:"quantity_fmt"`
	AvgCostFmt       string          `json:"avg_cost_fmt"`
	CurrentPriceFmt  string          `json:"current_price_fmt"`
	MarketValueFmt   string          `json:"market_value_fmt"`
	CostBasisFmt     string          `json:"cost_basis_fmt"`
	UnrealizedFmt    string          `json:"unrealized_pnl_fmt"`
	UnrealizedPctFmt string          `json:"unrealized_pnl_pct_fmt"`
	DailyChangeFmt   string          `json:"daily_change_pct_fmt"`
	WalletPctFmt     string          `json:"wallet_pct_fmt"`
}

// TotalsRow is the summary line under the holdings table.
type TotalsRow struct {
	MarketValue    decimal.Decimal `json:"market_value"`
	CostBasis      decimal.Decimal `json:"cost_basis"`
	UnrealizedPnL  decimal.Decimal `json:"unrealized_pnl"`
	MarketValueFmt string          `json:"market_value_fmt"`
	CostBasisFmt   string          `json:"cost_basis_fmt"`
	UnrealizedFmt  string          `json:"unrealized_pnl_fmt"`
	UnpricedRows   int             `json:"unpriced_rows"`
}

// PositionsView is the full holdings table state for one portfolio.
type PositionsView struct {
	Rows         []PositionRow    `json:"rows"`
	Totals       TotalsRow        `json:"totals"`
	Sort         derive.SortState `json:"sort"`
	BaseCurrency string           `json:"base_currency"`
}

// SoldPositionRow is one closed-holdings row with formatted cells.
type SoldPositionRow struct {
	models.SoldPosition
	QuantityFmt    string `json:"quantity_fmt"`
	CostBasisFmt   string `json:"cost_basis_fmt"`
	ProceedsFmt    string `json:"proceeds_fmt"`
	RealizedPnLFmt string `json:"realized_pnl_fmt"`
}

type PositionViewService struct {
	API    positionAPI
	Sorter *derive.Sorter
	Logger *zap.Logger
}

// Table fetches, sorts and formats the holdings table. Wallet percentages
// are computed over the full position list before sorting, so the figures
// do not depend on the current column order.
func (s *PositionViewService) Table(ctx context.Context, portfolioID uint64, sort derive.SortState) (*PositionsView, error) {
	pf, err := s.API.GetPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	positions, err := s.API.ListPositions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	cur := ""
	if pf != nil {
		cur = pf.BaseCurrency
	}

	pcts := derive.WalletPercents(positions)
	pctByAsset := make(map[uint64]decimal.Decimal, len(positions))
	for i, p := range positions {
		pctByAsset[p.AssetID] = pcts[i]
	}

	sorted := derive.SortPositions(positions, sort.Key, sort.Dir, s.Sorter)
	rows := make([]PositionRow, len(sorted))
	for i, p := range sorted {
		rows[i] = formatPositionRow(p, pctByAsset[p.AssetID], cur)
	}

	totals := derive.SumPositions(positions)
	mv, cb, pnl := totals.MarketValue, totals.CostBasis, totals.UnrealizedPnL
	return &PositionsView{
		Rows: rows,
		Totals: TotalsRow{
			MarketValue:    mv,
			CostBasis:      cb,
			UnrealizedPnL:  pnl,
			MarketValueFmt: currencyCell(&mv, cur),
			CostBasisFmt:   currencyCell(&cb, cur),
			UnrealizedFmt:  signedCurrencyCell(&pnl, cur),
			UnpricedRows:   totals.UnpricedRows,
		},
		Sort:         sort,
		BaseCurrency: cur,
	}, nil
}

// SoldTable fetches and formats the closed-holdings table, newest close
// first.
func (s *PositionViewService) SoldTable(ctx context.Context, portfolioID uint64) ([]SoldPositionRow, error) {
	sold, err := s.API.ListSoldPositions(ctx, portfolioID)
	if err != nil {
		return nil, err
	}
	rows := make([]SoldPositionRow, len(sold))
	for i, p := range sold {
		rows[i] = SoldPositionRow{
			SoldPosition:   p,
			QuantityFmt:    quantityCell(p.Quantity),
			CostBasisFmt:   currencyCell(&p.CostBasis, p.Currency),
			ProceedsFmt:    currencyCell(&p.Proceeds, p.Currency),
			RealizedPnLFmt: signedCurrencyCell(&p.RealizedPnL, p.Currency),
		}
	}
	return rows, nil
}
