package models

import (
	"github.com/shopspring/decimal"
)

// PricePoint is one entry of an asset's price history. Source tags the
// upstream provider and is display-only.
type PricePoint struct {
	Date   string           `json:"date"`
	Price  decimal.Decimal  `json:"price"`
	Volume *decimal.Decimal `json:"volume"`
	Source string           `json:"source"`
}

// PortfolioHistoryPoint is one entry of the aggregate portfolio series.
// A leading point with Value == 0 and Invested == 0 is a "no data yet"
// sentinel: plotted, but excluded from percentage baselines.
type PortfolioHistoryPoint struct {
	Date     string           `json:"date"`
	Value    decimal.Decimal  `json:"value"`
	Invested decimal.Decimal  `json:"invested"`
	GainPct  *decimal.Decimal `json:"gain_pct"`
}

// Sentinel reports the "no data yet" marker state.
func (p PortfolioHistoryPoint) Sentinel() bool {
	return p.Value.IsZero() && p.Invested.IsZero()
}

// PriceHealth is the backend's freshness report for an asset's pricing.
type PriceHealth struct {
	AssetID   uint64 `json:"asset_id"`
	Symbol    string `json:"symbol"`
	LastDate  string `json:"last_date"`
	StaleDays int    `json:"stale_days"`
	Status    string `json:"status"`
}
