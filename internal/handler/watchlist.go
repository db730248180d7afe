package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
)

type WatchlistHandler struct {
	Client *folio.Client
	Logger *zap.Logger
}

func (h *WatchlistHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/watchlist", h.list)
	authed.POST("/watchlist", h.add)
	authed.PUT("/watchlist/:id", h.update)
	authed.DELETE("/watchlist/:id", h.remove)
	authed.POST("/watchlist/import", h.importCSV)
	authed.GET("/watchlist/export", h.exportCSV)
}

// @Summary Watchlist
// @Tags watchlist
// @Success 200 {object} apiResponse
// @Router /api/watchlist [get]
func (h *WatchlistHandler) list(c *gin.Context) {
	items, err := h.Client.ListWatchlist(c.Request.Context())
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *WatchlistHandler) add(c *gin.Context) {
	var body folio.WatchlistRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid watchlist payload", nil)
		return
	}
	entry, err := h.Client.AddWatchlistEntry(c.Request.Context(), body)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, entry, nil)
}

func (h *WatchlistHandler) update(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var body folio.WatchlistRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid watchlist payload", nil)
		return
	}
	entry, err := h.Client.UpdateWatchlistEntry(c.Request.Context(), id, body)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, entry, nil)
}

func (h *WatchlistHandler) remove(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Client.RemoveWatchlistEntry(c.Request.Context(), id); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *WatchlistHandler) importCSV(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	defer file.Close()

	result, err := h.Client.ImportWatchlistCSV(c.Request.Context(), header.Filename, file)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Export the watchlist as CSV
// @Tags watchlist
// @Produce text/csv
// @Success 200 {string} string "CSV body"
// @Router /api/watchlist/export [get]
func (h *WatchlistHandler) exportCSV(c *gin.Context) {
	csv, err := h.Client.ExportWatchlistCSV(c.Request.Context())
	if err != nil {
		BackendError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="watchlist.csv"`)
	c.Data(http.StatusOK, "text/csv", csv)
}
