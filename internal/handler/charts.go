package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/chart"
	"folioboard/internal/service"
)

type ChartHandler struct {
	Charts *service.ChartService
	Logger *zap.Logger
}

func (h *ChartHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/portfolios/:id/chart", h.portfolioChart)
	authed.GET("/assets/:id/chart", h.priceChart)
}

// @Summary Portfolio value chart
// @Tags charts
// @Param id path int true "portfolio id"
// @Param period query string false "1W|1M|3M|6M|YTD|1Y|ALL"
// @Param hover query int false "hovered point index"
// @Success 200 {object} apiResponse
// @Router /api/portfolios/{id}/chart [get]
func (h *ChartHandler) portfolioChart(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	period, err := chart.ParsePeriod(strQuery(c, "period", chart.Period1M.String()))
	if err != nil {
		Error(c, http.StatusBadRequest, "unknown period", nil)
		return
	}

	view, err := h.Charts.PortfolioChart(c.Request.Context(), id, period)
	if err != nil {
		BackendError(c, err)
		return
	}
	if idx := intQuery(c, "hover", -1); idx >= 0 {
		view.Hover = view.HoverAt(idx)
	}
	Ok(c, view, nil)
}

// @Summary Asset price chart with trade and split markers
// @Tags charts
// @Param id path int true "asset id"
// @Param portfolio_id query int true "portfolio id for markers"
// @Param period query string false "1W|1M|3M|6M|YTD|1Y|ALL"
// @Param hover query int false "hovered point index"
// @Success 200 {object} apiResponse
// @Router /api/assets/{id}/chart [get]
func (h *ChartHandler) priceChart(c *gin.Context) {
	assetID := uint64Param(c, "id")
	if assetID == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	portfolioID := uint64QueryPtr(c, "portfolio_id")
	if portfolioID == nil {
		Error(c, http.StatusBadRequest, "portfolio_id is required", nil)
		return
	}
	period, err := chart.ParsePeriod(strQuery(c, "period", chart.Period1M.String()))
	if err != nil {
		Error(c, http.StatusBadRequest, "unknown period", nil)
		return
	}

	view, err := h.Charts.PriceChart(c.Request.Context(), *portfolioID, assetID, period)
	if err != nil {
		BackendError(c, err)
		return
	}
	if idx := intQuery(c, "hover", -1); idx >= 0 {
		view.Hover = view.HoverAt(idx)
	}
	Ok(c, view, nil)
}
