package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FXRate is how many To units one From unit buys, as of AsOf.
type FXRate struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
	AsOf time.Time       `json:"as_of"`
}
