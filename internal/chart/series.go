package chart

import (
	"github.com/shopspring/decimal"

	"folioboard/internal/format"
	"folioboard/internal/models"
)

// GradientFill describes the vertical fill under the line; the renderer
// interpolates from the line color down to transparent.
type GradientFill struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Direction string `json:"direction"`
}

var defaultFill = GradientFill{From: "rgba(59,130,246,0.35)", To: "rgba(59,130,246,0)", Direction: "vertical"}

// Dataset is one chart-ready line.
type Dataset struct {
	Labels      []string          `json:"labels"`
	Values      []decimal.Decimal `json:"values"`
	Min         decimal.Decimal   `json:"min"`
	Max         decimal.Decimal   `json:"max"`
	Precision   int32             `json:"precision"`
	Fill        GradientFill      `json:"fill"`
	Annotations []Annotation      `json:"annotations,omitempty"`
}

// BuildPriceDataset prepares an asset's price series plus transaction and
// split markers for the currently displayed range.
func BuildPriceDataset(points []models.PricePoint, period Period, txs []models.Transaction, splits []models.StockSplit) Dataset {
	ds := Dataset{
		Labels: make([]string, len(points)),
		Values: make([]decimal.Decimal, len(points)),
		Fill:   defaultFill,
	}
	for i, p := range points {
		ds.Labels[i] = period.Label(p.Date)
		ds.Values[i] = p.Price
	}
	ds.Min, ds.Max = bounds(ds.Values)
	ds.Precision = format.Precision(ds.Min, ds.Max)
	ds.Annotations = MatchAnnotations(points, txs, splits)
	for i := range ds.Annotations {
		ds.Annotations[i].GuideMin = ds.Min
	}
	return ds
}

// BuildHistoryDataset prepares the aggregate portfolio series. A leading
// sentinel point is still plotted at zero; only the gain math skips it.
func BuildHistoryDataset(points []models.PortfolioHistoryPoint, period Period) Dataset {
	ds := Dataset{
		Labels: make([]string, len(points)),
		Values: make([]decimal.Decimal, len(points)),
		Fill:   defaultFill,
	}
	for i, p := range points {
		ds.Labels[i] = period.Label(p.Date)
		ds.Values[i] = p.Value
	}
	ds.Min, ds.Max = bounds(ds.Values)
	ds.Precision = format.Precision(ds.Min, ds.Max)
	return ds
}

func bounds(values []decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	if len(values) == 0 {
		return decimal.Zero, decimal.Zero
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v.LessThan(min) {
			min = v
		}
		if v.GreaterThan(max) {
			max = v
		}
	}
	return min, max
}
