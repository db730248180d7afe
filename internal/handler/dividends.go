package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"folioboard/internal/service"
)

type DividendHandler struct {
	Dividends *service.DividendService
	Logger    *zap.Logger
}

func (h *DividendHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/portfolios/:id/dividends", h.overview)
	authed.POST("/portfolios/:id/dividends/fetch", h.refetch)
	authed.POST("/dividends/:id/accept", h.accept)
	authed.POST("/dividends/:id/reject", h.reject)
}

// @Summary Pending dividends panel
// @Tags dividends
// @Param id path int true "portfolio id"
// @Param currency query string false "portfolio base currency"
// @Success 200 {object} apiResponse
// @Router /api/portfolios/{id}/dividends [get]
func (h *DividendHandler) overview(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	view, err := h.Dividends.Overview(c.Request.Context(), id, strQuery(c, "currency", "USD"))
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, view, nil)
}

// @Summary Re-detect pending dividends
// @Tags dividends
// @Param id path int true "portfolio id"
// @Success 200 {object} apiResponse
// @Router /api/portfolios/{id}/dividends/fetch [post]
func (h *DividendHandler) refetch(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	view, err := h.Dividends.Refetch(c.Request.Context(), id, strQuery(c, "currency", "USD"))
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, view, nil)
}

type acceptDividendBody struct {
	WithholdingTax *decimal.Decimal `json:"withholding_tax"`
	Notes          string           `json:"notes"`
}

// @Summary Accept a pending dividend
// @Tags dividends
// @Param id path int true "dividend id"
// @Param body body acceptDividendBody false "withholding tax and notes"
// @Success 200 {object} apiResponse
// @Router /api/dividends/{id}/accept [post]
func (h *DividendHandler) accept(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var body acceptDividendBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			Error(c, http.StatusBadRequest, "invalid accept payload", nil)
			return
		}
	}

	err := h.Dividends.Accept(c.Request.Context(), id, body.WithholdingTax, body.Notes)
	if errors.Is(err, service.ErrRowBusy) {
		Error(c, http.StatusConflict, err.Error(), nil)
		return
	}
	if err != nil {
		BackendError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("dividend accepted", zap.Uint64("dividend_id", id))
	}
	h.respondRefreshed(c)
}

// @Summary Reject a pending dividend
// @Tags dividends
// @Param id path int true "dividend id"
// @Success 200 {object} apiResponse
// @Router /api/dividends/{id}/reject [post]
func (h *DividendHandler) reject(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	err := h.Dividends.Reject(c.Request.Context(), id)
	if errors.Is(err, service.ErrRowBusy) {
		Error(c, http.StatusConflict, err.Error(), nil)
		return
	}
	if err != nil {
		BackendError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("dividend rejected", zap.Uint64("dividend_id", id))
	}
	h.respondRefreshed(c)
}

// respondRefreshed reloads the dividends panel after a mutation when the
// caller names its portfolio, saving the extra round trip; otherwise the
// response carries no data.
func (h *DividendHandler) respondRefreshed(c *gin.Context) {
	pid := uint64QueryPtr(c, "portfolio_id")
	if pid == nil {
		Ok(c, nil, nil)
		return
	}
	view, err := h.Dividends.Overview(c.Request.Context(), *pid, strQuery(c, "currency", "USD"))
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("dividend panel reload failed", zap.Uint64("portfolio_id", *pid), zap.Error(err))
		}
		Ok(c, nil, nil)
		return
	}
	Ok(c, view, nil)
}
