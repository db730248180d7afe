package models

import (
	"github.com/shopspring/decimal"
)

// Position is a backend DTO for a current holding. Pricing fields are
// pointers: an asset without live pricing has no market value or P&L.
type Position struct {
	AssetID          uint64           `json:"asset_id"`
	Symbol           string           `json:"symbol"`
	Name             string           `json:"name"`
	Quantity         decimal.Decimal  `json:"quantity"`
	AvgCost          decimal.Decimal  `json:"avg_cost"`
	CurrentPrice     *decimal.Decimal `json:"current_price"`
	MarketValue      *decimal.Decimal `json:"market_value"`
	CostBasis        decimal.Decimal  `json:"cost_basis"`
	UnrealizedPnL    *decimal.Decimal `json:"unrealized_pnl"`
	UnrealizedPnLPct *decimal.Decimal `json:"unrealized_pnl_pct"`
	DailyChangePct   *decimal.Decimal `json:"daily_change_pct"`
	Currency         string           `json:"currency"`
	AssetType        string           `json:"asset_type"`
}

// SoldPosition is a backend DTO for a fully closed holding.
type SoldPosition struct {
	AssetID     uint64          `json:"asset_id"`
	Symbol      string          `json:"symbol"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostBasis   decimal.Decimal `json:"cost_basis"`
	Proceeds    decimal.Decimal `json:"proceeds"`
	RealizedPnL decimal.Decimal `json:"realized_pnl"`
	Currency    string          `json:"currency"`
	ClosedAt    string          `json:"closed_at"`
}

// Portfolio is a backend DTO.
type Portfolio struct {
	ID           uint64 `json:"id"`
	Name         string `json:"name"`
	BaseCurrency string `json:"base_currency"`
	IsDefault    bool   `json:"is_default"`
}
