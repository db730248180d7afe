// Package format renders domain numbers for display. Policy is fixed per
// formatter: missing money renders "N/A", missing percentages and
// quantities render "-".
package format

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const missingMoney = "N/A"
const missingValue = "-"

// Currency renders an amount with the currency's own symbol and separators
// but always two fraction digits, whatever the currency's native fraction.
func Currency(amount *decimal.Decimal, code string) string {
	if amount == nil {
		return missingMoney
	}
	cur := money.GetCurrency(code)
	if cur == nil {
		return fmt.Sprintf("%s %s", amount.StringFixed(2), code)
	}
	f := money.NewFormatter(2, cur.Decimal, cur.Thousand, cur.Grapheme, cur.Template)
	minor := amount.Shift(2).Round(0).IntPart()
	return f.Format(minor)
}

// SignedCurrency prefixes gains with "+" so P&L cells read at a glance.
func SignedCurrency(amount *decimal.Decimal, code string) string {
	if amount == nil {
		return missingMoney
	}
	out := Currency(amount, code)
	if amount.IsPositive() {
		return "+" + out
	}
	return out
}

// Quantity renders up to eight fraction digits with trailing zeros (and a
// bare trailing point) stripped, so the output is idempotent under
// re-formatting.
func Quantity(q decimal.Decimal) string {
	return q.Round(8).String()
}

// Percent renders a signed percentage with two fraction digits.
func Percent(p *decimal.Decimal) string {
	if p == nil {
		return missingValue
	}
	if p.IsPositive() {
		return "+" + p.StringFixed(2) + "%"
	}
	return p.StringFixed(2) + "%"
}

var (
	thousand = decimal.New(1, 3)
	million  = decimal.New(1, 6)
	billion  = decimal.New(1, 9)
	trillion = decimal.New(1, 12)
)

// Abbreviate renders market-cap/volume scale figures with a magnitude
// suffix: 1234567 -> "1.23M".
func Abbreviate(n decimal.Decimal) string {
	abs := n.Abs()
	switch {
	case abs.GreaterThanOrEqual(trillion):
		return n.Div(trillion).StringFixed(2) + "T"
	case abs.GreaterThanOrEqual(billion):
		return n.Div(billion).StringFixed(2) + "B"
	case abs.GreaterThanOrEqual(million):
		return n.Div(million).StringFixed(2) + "M"
	case abs.GreaterThanOrEqual(thousand):
		return n.Div(thousand).StringFixed(2) + "K"
	default:
		return n.StringFixed(2)
	}
}

var (
	centThreshold = decimal.RequireFromString("0.01")
	dimeThreshold = decimal.RequireFromString("0.10")
	oneThreshold  = decimal.RequireFromString("1")
	flatRatio     = decimal.RequireFromString("0.01")
)

// Precision picks the fraction digits for chart axis and tooltip values
// from the series range. Small prices need more digits; a nearly flat
// series gets one extra tier so it stays visually distinguishable.
func Precision(min, max decimal.Decimal) int32 {
	p := basePrecision(max.Abs())
	if !max.IsZero() {
		spread := max.Sub(min).Abs().Div(max.Abs())
		if spread.LessThan(flatRatio) {
			p = bumpPrecision(p)
		}
	}
	return p
}

func basePrecision(v decimal.Decimal) int32 {
	switch {
	case v.LessThan(centThreshold):
		return 6
	case v.LessThan(dimeThreshold):
		return 4
	case v.LessThan(oneThreshold):
		return 3
	default:
		return 2
	}
}

func bumpPrecision(p int32) int32 {
	switch p {
	case 2:
		return 3
	case 3:
		return 4
	case 4:
		return 6
	default:
		return 8
	}
}
