package service

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"folioboard/internal/chart"
	"folioboard/internal/client/folio"
	"folioboard/internal/models"
)

type chartAPI interface {
	PriceHistory(ctx context.Context, assetID uint64, period string) ([]models.PricePoint, error)
	ListSplits(ctx context.Context, assetID uint64) ([]models.StockSplit, error)
	ListTransactions(ctx context.Context, params folio.ListTransactionsParams) ([]models.Transaction, error)
	PortfolioHistory(ctx context.Context, portfolioID uint64, period string) ([]models.PortfolioHistoryPoint, error)
}

// PriceChartView is the asset price chart plus its hover baseline state.
type PriceChartView struct {
	Period  chart.Period    `json:"period"`
	Dataset chart.Dataset   `json:"dataset"`
	Hover   chart.HoverStat `json:"hover"`
	points  []models.PricePoint
}

// PortfolioChartView is the aggregate value chart with the period gain
// figure. GainPct is nil when the period baseline is undefined and the
// header omits the figure.
type PortfolioChartView struct {
	Period     chart.Period     `json:"period"`
	Dataset    chart.Dataset    `json:"dataset"`
	GainPct    *decimal.Decimal `json:"gain_pct,omitempty"`
	GainPctFmt string           `json:"gain_pct_fmt"`
	Hover      chart.HoverStat  `json:"hover"`
	points     []models.PortfolioHistoryPoint
}

type ChartService struct {
	API    chartAPI
	Logger *zap.Logger
}

// PriceChart fetches the period-scoped price series and decorates it with
// buy/sell/split markers for dates present in the series. The transaction
// fetch is best effort: a chart without markers beats no chart.
func (s *ChartService) PriceChart(ctx context.Context, portfolioID, assetID uint64, period chart.Period) (*PriceChartView, error) {
	points, err := s.API.PriceHistory(ctx, assetID, period.String())
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	var splits []models.StockSplit
	if txs, err = s.API.ListTransactions(ctx, folio.ListTransactionsParams{PortfolioID: portfolioID, AssetID: &assetID}); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("price chart: transaction markers unavailable", zap.Uint64("asset_id", assetID), zap.Error(err))
		}
		txs = nil
	}
	if splits, err = s.API.ListSplits(ctx, assetID); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("price chart: split markers unavailable", zap.Uint64("asset_id", assetID), zap.Error(err))
		}
		splits = nil
	}

	view := &PriceChartView{
		Period:  period,
		Dataset: chart.BuildPriceDataset(points, period, txs, splits),
		points:  points,
	}
	view.Hover = chart.PriceHoverAt(points, -1)
	return view, nil
}

// HoverAt recomputes the readout for a hovered index; out-of-range indexes
// restore the mouse-leave state.
func (v *PriceChartView) HoverAt(idx int) chart.HoverStat {
	return chart.PriceHoverAt(v.points, idx)
}

// PortfolioChart fetches the period-scoped aggregate series. Switching
// periods always refetches from the backend rather than reslicing a cached
// series, so bucket sizes match the server's aggregation.
func (s *ChartService) PortfolioChart(ctx context.Context, portfolioID uint64, period chart.Period) (*PortfolioChartView, error) {
	points, err := s.API.PortfolioHistory(ctx, portfolioID, period.String())
	if err != nil {
		return nil, err
	}

	view := &PortfolioChartView{
		Period:  period,
		Dataset: chart.BuildHistoryDataset(points, period),
		GainPct: chart.PeriodGainPct(points),
		points:  points,
	}
	view.GainPctFmt = percentCell(view.GainPct)
	view.Hover = chart.HoverAt(points, -1)
	return view, nil
}

func (v *PortfolioChartView) HoverAt(idx int) chart.HoverStat {
	return chart.HoverAt(v.points, idx)
}
