package derive

import (
	"github.com/shopspring/decimal"

	"folioboard/internal/models"
)

var hundred = decimal.NewFromInt(100)

// WalletPercents computes each position's share of total market value, in
// percent, index-aligned with the input. Rows without a market value, or a
// zero total, yield zero.
func WalletPercents(items []models.Position) []decimal.Decimal {
	total := decimal.Zero
	for _, p := range items {
		if p.MarketValue != nil {
			total = total.Add(*p.MarketValue)
		}
	}

	out := make([]decimal.Decimal, len(items))
	if total.IsZero() {
		return out
	}
	for i, p := range items {
		if p.MarketValue == nil {
			continue
		}
		out[i] = p.MarketValue.Div(total).Mul(hundred)
	}
	return out
}

// Totals is the summary row over a position list. Value and P&L sums skip
// rows without live pricing; cost basis always sums.
type Totals struct {
	MarketValue   decimal.Decimal
	CostBasis     decimal.Decimal
	UnrealizedPnL decimal.Decimal
	PricedRows    int
	UnpricedRows  int
}

func SumPositions(items []models.Position) Totals {
	var t Totals
	for _, p := range items {
		t.CostBasis = t.CostBasis.Add(p.CostBasis)
		if p.MarketValue == nil {
			t.UnpricedRows++
			continue
		}
		t.PricedRows++
		t.MarketValue = t.MarketValue.Add(*p.MarketValue)
		if p.UnrealizedPnL != nil {
			t.UnrealizedPnL = t.UnrealizedPnL.Add(*p.UnrealizedPnL)
		}
	}
	return t
}
