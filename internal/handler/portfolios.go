package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/derive"
	"folioboard/internal/models"
	"folioboard/internal/repository"
	"folioboard/internal/service"
)

const (
	tablePositions    = "positions"
	tableTransactions = "transactions"
)

type PortfolioHandler struct {
	Client    *folio.Client
	Positions *service.PositionViewService
	Prefs     repository.Repository
	Logger    *zap.Logger
}

func (h *PortfolioHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/portfolios", h.list)
	authed.POST("/portfolios", h.create)
	authed.PUT("/portfolios/:id", h.update)
	authed.DELETE("/portfolios/:id", h.remove)
	authed.GET("/portfolios/:id/positions", h.positions)
	authed.GET("/portfolios/:id/positions/sold", h.soldPositions)
}

// @Summary List portfolios
// @Tags portfolios
// @Success 200 {object} apiResponse
// @Router /api/portfolios [get]
func (h *PortfolioHandler) list(c *gin.Context) {
	items, err := h.Client.ListPortfolios(c.Request.Context())
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *PortfolioHandler) create(c *gin.Context) {
	var body folio.PortfolioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid portfolio payload", nil)
		return
	}
	pf, err := h.Client.CreatePortfolio(c.Request.Context(), body)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, pf, nil)
}

func (h *PortfolioHandler) update(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var body folio.PortfolioRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid portfolio payload", nil)
		return
	}
	pf, err := h.Client.UpdatePortfolio(c.Request.Context(), id, body)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, pf, nil)
}

func (h *PortfolioHandler) remove(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Client.DeletePortfolio(c.Request.Context(), id); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

// @Summary Holdings table
// @Tags portfolios
// @Param id path int true "portfolio id"
// @Param sort query string false "sort key"
// @Param dir query string false "asc|desc"
// @Success 200 {object} apiResponse
// @Router /api/portfolios/{id}/positions [get]
func (h *PortfolioHandler) positions(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	sort := h.resolveSort(c, tablePositions, derive.SortState{Key: derive.PosKeyMarketValue, Dir: derive.Desc})
	view, err := h.Positions.Table(c.Request.Context(), id, sort)
	if err != nil {
		BackendError(c, err)
		return
	}
	if strQuery(c, "sort", "") != "" {
		h.rememberSort(c, tablePositions, sort)
	}
	Ok(c, view, nil)
}

// @Summary Closed holdings
// @Tags portfolios
// @Param id path int true "portfolio id"
// @Success 200 {object} apiResponse
// @Router /api/portfolios/{id}/positions/sold [get]
func (h *PortfolioHandler) soldPositions(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	rows, err := h.Positions.SoldTable(c.Request.Context(), id)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, rows, nil)
}

// resolveSort reads the explicit sort from the query, falling back to the
// user's saved preference, then to the table default.
func (h *PortfolioHandler) resolveSort(c *gin.Context, table string, def derive.SortState) derive.SortState {
	if key := strQuery(c, "sort", ""); key != "" {
		return derive.SortState{Key: key, Dir: derive.ParseDirection(strQuery(c, "dir", "desc"))}
	}
	if sess := CurrentSession(c); sess != nil && h.Prefs != nil {
		pref, err := h.Prefs.GetViewPreference(c.Request.Context(), sess.UserID, table)
		if err == nil && pref != nil && pref.SortKey != "" {
			return derive.SortState{Key: pref.SortKey, Dir: derive.ParseDirection(pref.SortDir)}
		}
	}
	return def
}

func (h *PortfolioHandler) rememberSort(c *gin.Context, table string, sort derive.SortState) {
	sess := CurrentSession(c)
	if sess == nil || h.Prefs == nil {
		return
	}
	err := h.Prefs.UpsertViewPreference(c.Request.Context(), &models.ViewPreference{
		UserID:  sess.UserID,
		Table:   table,
		SortKey: sort.Key,
		SortDir: string(sort.Dir),
	})
	if err != nil && h.Logger != nil {
		h.Logger.Warn("view preference save failed", zap.Uint64("user_id", sess.UserID), zap.Error(err))
	}
}
