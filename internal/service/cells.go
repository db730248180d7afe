package service

import (
	"github.com/shopspring/decimal"

	"folioboard/internal/format"
	"folioboard/internal/models"
)

// Cell helpers keep the display policy in one place: money cells fall back
// to "N/A" when the backend has no figure, percentage and quantity cells to
// "-".

func currencyCell(amount *decimal.Decimal, code string) string {
	return format.Currency(amount, code)
}

func signedCurrencyCell(amount *decimal.Decimal, code string) string {
	return format.SignedCurrency(amount, code)
}

func quantityCell(q decimal.Decimal) string {
	return format.Quantity(q)
}

func percentCell(p *decimal.Decimal) string {
	return format.Percent(p)
}

// plainPercentCell renders without the gain/loss sign prefix; used for
// shares of a whole like the wallet column.
func plainPercentCell(p decimal.Decimal) string {
	return p.StringFixed(2) + "%"
}

func formatPositionRow(p models.Position, walletPct decimal.Decimal, baseCurrency string) PositionRow {
	return PositionRow{
		Position:         p,
		WalletPct:        walletPct,
		QuantityFmt:      quantityCell(p.Quantity),
		AvgCostFmt:       currencyCell(&p.AvgCost, p.Currency),
		CurrentPriceFmt:  currencyCell(p.CurrentPrice, p.Currency),
		MarketValueFmt:   currencyCell(p.MarketValue, baseCurrency),
		CostBasisFmt:     currencyCell(&p.CostBasis, baseCurrency),
		UnrealizedFmt:    signedCurrencyCell(p.UnrealizedPnL, baseCurrency),
		UnrealizedPctFmt: percentCell(p.UnrealizedPnLPct),
		DailyChangeFmt:   percentCell(p.DailyChangePct),
		WalletPctFmt:     plainPercentCell(walletPct),
	}
}
