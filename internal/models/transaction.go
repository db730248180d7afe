package models

import (
	"github.com/shopspring/decimal"
)

const (
	TxTypeBuy  = "BUY"
	TxTypeSell = "SELL"
)

// Transaction is a backend DTO. Dates arrive as ISO day strings
// ("2006-01-02") and are kept raw; chart annotation matching is defined on
// the string form.
type Transaction struct {
	ID               uint64           `json:"id"`
	AssetID          uint64           `json:"asset_id"`
	Symbol           string           `json:"symbol"`
	Type             string           `json:"type"`
	TxDate           string           `json:"tx_date"`
	Quantity         decimal.Decimal  `json:"quantity"`
	AdjustedQuantity decimal.Decimal  `json:"adjusted_quantity"`
	Price            *decimal.Decimal `json:"price"`
	Fees             *decimal.Decimal `json:"fees"`
	PortfolioName    string           `json:"portfolio_name"`
	Notes            string           `json:"notes"`
}

// splitEpsilon absorbs float accumulation in the backend's split math.
// Exact equality would flag nearly every adjusted row.
var splitEpsilon = decimal.RequireFromString("0.0001")

// SplitAdjusted reports whether a stock split changed the share count after
// the transaction date.
func (t Transaction) SplitAdjusted() bool {
	return t.Quantity.Sub(t.AdjustedQuantity).Abs().GreaterThan(splitEpsilon)
}

// Total is price*quantity+fees with missing operands treated as zero.
func (t Transaction) Total() decimal.Decimal {
	if t.Price == nil {
		return decimal.Zero
	}
	total := t.Price.Mul(t.Quantity)
	if t.Fees != nil {
		total = total.Add(*t.Fees)
	}
	return total
}

// StockSplit is a backend DTO describing a historical split event.
type StockSplit struct {
	ID      uint64          `json:"id"`
	AssetID uint64          `json:"asset_id"`
	Date    string          `json:"date"`
	Ratio   decimal.Decimal `json:"ratio"`
}
