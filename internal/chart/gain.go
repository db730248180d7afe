package chart

import (
	"github.com/shopspring/decimal"

	"folioboard/internal/models"
)

var hundred = decimal.NewFromInt(100)

// BaselineIndex picks the period-start reference point. A leading sentinel
// ("no data yet") point is skipped when anything follows it; it still
// renders in the plotted line.
func BaselineIndex(points []models.PortfolioHistoryPoint) int {
	if len(points) > 1 && points[0].Sentinel() {
		return 1
	}
	return 0
}

// PeriodGainPct isolates market performance from deposits and withdrawals:
//
//	((end_value - end_invested) - (start_value - start_invested)) / start_value * 100
//
// measured from the adjusted baseline. When the baseline has no value or no
// invested capital the ratio is meaningless and the result is nil — the
// caller omits the figure rather than showing 0%.
func PeriodGainPct(points []models.PortfolioHistoryPoint) *decimal.Decimal {
	if len(points) == 0 {
		return nil
	}
	start := points[BaselineIndex(points)]
	end := points[len(points)-1]

	if start.Value.LessThanOrEqual(decimal.Zero) || start.Invested.LessThanOrEqual(decimal.Zero) {
		return nil
	}

	startGain := start.Value.Sub(start.Invested)
	endGain := end.Value.Sub(end.Invested)
	pct := endGain.Sub(startGain).Div(start.Value).Mul(hundred)
	return &pct
}

// HoverStat is the live header readout while the cursor tracks the chart.
type HoverStat struct {
	Index     int              `json:"index"`
	Date      string           `json:"date"`
	Value     decimal.Decimal  `json:"value"`
	Change    decimal.Decimal  `json:"change"`
	ChangePct *decimal.Decimal `json:"change_pct,omitempty"`
}

// HoverAt computes the readout for one hovered index against the adjusted
// period start. Out-of-range indexes clamp to the last point, which is also
// the mouse-leave state.
func HoverAt(points []models.PortfolioHistoryPoint, idx int) HoverStat {
	if len(points) == 0 {
		return HoverStat{Index: -1}
	}
	if idx < 0 || idx >= len(points) {
		idx = len(points) - 1
	}
	base := points[BaselineIndex(points)]
	point := points[idx]

	stat := HoverStat{
		Index:  idx,
		Date:   point.Date,
		Value:  point.Value,
		Change: point.Value.Sub(base.Value),
	}
	if base.Value.GreaterThan(decimal.Zero) {
		pct := stat.Change.Div(base.Value).Mul(hundred)
		stat.ChangePct = &pct
	}
	return stat
}

// PriceHoverAt is the price-chart variant; the baseline is simply the first
// point of the fetched range.
func PriceHoverAt(points []models.PricePoint, idx int) HoverStat {
	if len(points) == 0 {
		return HoverStat{Index: -1}
	}
	if idx < 0 || idx >= len(points) {
		idx = len(points) - 1
	}
	base := points[0]
	point := points[idx]

	stat := HoverStat{
		Index:  idx,
		Date:   point.Date,
		Value:  point.Price,
		Change: point.Price.Sub(base.Price),
	}
	if base.Price.GreaterThan(decimal.Zero) {
		pct := stat.Change.Div(base.Price).Mul(hundred)
		stat.ChangePct = &pct
	}
	return stat
}
