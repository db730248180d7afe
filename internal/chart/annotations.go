package chart

import (
	"github.com/shopspring/decimal"

	"folioboard/internal/models"
)

type AnnotationKind string

const (
	AnnotationBuy   AnnotationKind = "buy"
	AnnotationSell  AnnotationKind = "sell"
	AnnotationSplit AnnotationKind = "split"
)

var annotationColors = map[AnnotationKind]string{
	AnnotationBuy:   "#22c55e",
	AnnotationSell:  "#ef4444",
	AnnotationSplit: "#a855f7",
}

// Annotation marks an event on the price line: a circular marker at the
// matched point and a dashed guide from the series minimum up to it.
type Annotation struct {
	Index    int             `json:"index"`
	Date     string          `json:"date"`
	Kind     AnnotationKind  `json:"kind"`
	Color    string          `json:"color"`
	Value    decimal.Decimal `json:"value"`
	GuideMin decimal.Decimal `json:"guide_min"`
	Label    string          `json:"label"`
}

// MatchAnnotations places transaction and split markers on the series.
// Matching is by calendar day only (ISO-prefix comparison); events with no
// price point on that exact day are dropped, never snapped to a neighbor.
func MatchAnnotations(points []models.PricePoint, txs []models.Transaction, splits []models.StockSplit) []Annotation {
	if len(points) == 0 {
		return nil
	}

	byDay := make(map[string]int, len(points))
	for i, p := range points {
		day := p.Date
		if len(day) > 10 {
			day = day[:10]
		}
		if _, seen := byDay[day]; !seen {
			byDay[day] = i
		}
	}

	var out []Annotation
	for _, tx := range txs {
		idx, ok := byDay[isoDay(tx.TxDate)]
		if !ok {
			continue
		}
		kind := AnnotationBuy
		if tx.Type == models.TxTypeSell {
			kind = AnnotationSell
		}
		out = append(out, Annotation{
			Index: idx,
			Date:  isoDay(tx.TxDate),
			Kind:  kind,
			Color: annotationColors[kind],
			Value: points[idx].Price,
			Label: tx.Type + " " + tx.Quantity.String(),
		})
	}
	for _, sp := range splits {
		idx, ok := byDay[isoDay(sp.Date)]
		if !ok {
			continue
		}
		out = append(out, Annotation{
			Index: idx,
			Date:  isoDay(sp.Date),
			Kind:  AnnotationSplit,
			Color: annotationColors[AnnotationSplit],
			Value: points[idx].Price,
			Label: "Split " + sp.Ratio.String() + ":1",
		})
	}
	return out
}

func isoDay(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
