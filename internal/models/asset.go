package models

import (
	"github.com/shopspring/decimal"
)

// Asset is a backend DTO for a tradable instrument.
type Asset struct {
	ID        uint64           `json:"id"`
	Symbol    string           `json:"symbol"`
	Name      string           `json:"name"`
	AssetType string           `json:"asset_type"`
	Currency  string           `json:"currency"`
	MarketCap *decimal.Decimal `json:"market_cap"`
	LogoURL   *string          `json:"logo_url"`
}

// WatchlistEntry is a backend DTO.
type WatchlistEntry struct {
	ID          uint64           `json:"id"`
	AssetID     uint64           `json:"asset_id"`
	Symbol      string           `json:"symbol"`
	Name        string           `json:"name"`
	TargetPrice *decimal.Decimal `json:"target_price"`
	Notes       string           `json:"notes"`
}
