package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	DividendPending  = "PENDING"
	DividendAccepted = "ACCEPTED"
	DividendRejected = "REJECTED"
)

// PendingDividend is a backend DTO for a detected but unconfirmed dividend.
// Status moves PENDING -> ACCEPTED | REJECTED and never back.
type PendingDividend struct {
	ID          uint64          `json:"id"`
	AssetID     uint64          `json:"asset_id"`
	Symbol      string          `json:"symbol"`
	ExDate      string          `json:"ex_date"`
	SharesHeld  decimal.Decimal `json:"shares_held"`
	PerShare    decimal.Decimal `json:"per_share"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Currency    string          `json:"currency"`
	Status      string          `json:"status"`
	FetchedAt   time.Time       `json:"fetched_at"`
}

// DividendStats is the backend's aggregate over pending dividends in a
// single currency.
type DividendStats struct {
	PendingCount  int             `json:"pending_count"`
	AcceptedCount int             `json:"accepted_count"`
	TotalAccepted decimal.Decimal `json:"total_accepted"`
	Currency      string          `json:"currency"`
}
