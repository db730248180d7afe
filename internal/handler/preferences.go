package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"folioboard/internal/models"
	"folioboard/internal/repository"
)

var knownTables = map[string]bool{
	tablePositions:    true,
	tableTransactions: true,
	"watchlist":       true,
	"dividends":       true,
}

type PreferenceHandler struct {
	Repo repository.Repository
}

func (h *PreferenceHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/preferences", h.list)
	authed.PUT("/preferences/:table", h.save)
}

// @Summary View preferences for the current user
// @Tags preferences
// @Success 200 {object} apiResponse
// @Router /api/preferences [get]
func (h *PreferenceHandler) list(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	prefs, err := h.Repo.ListViewPreferences(c.Request.Context(), sess.UserID)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, prefs, nil)
}

type savePreferenceBody struct {
	SortKey      string `json:"sort_key"`
	SortDir      string `json:"sort_dir"`
	ChartPeriod  string `json:"chart_period"`
	BaseCurrency string `json:"base_currency"`
}

// @Summary Save view preferences for one table
// @Tags preferences
// @Param table path string true "positions|transactions|watchlist|dividends"
// @Param body body savePreferenceBody true "settings"
// @Success 200 {object} apiResponse
// @Router /api/preferences/{table} [put]
func (h *PreferenceHandler) save(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	table := c.Param("table")
	if !knownTables[table] {
		Error(c, http.StatusBadRequest, "unknown table", nil)
		return
	}
	var body savePreferenceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid preference payload", nil)
		return
	}

	err := h.Repo.UpsertViewPreference(c.Request.Context(), &models.ViewPreference{
		UserID:       sess.UserID,
		Table:        table,
		SortKey:      body.SortKey,
		SortDir:      body.SortDir,
		ChartPeriod:  body.ChartPeriod,
		BaseCurrency: body.BaseCurrency,
	})
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, nil, nil)
}
