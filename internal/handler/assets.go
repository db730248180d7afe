package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/icon"
	"folioboard/internal/service"
)

type AssetHandler struct {
	Client *folio.Client
	Logos  *service.LogoResolver
	Logger *zap.Logger
}

func (h *AssetHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/assets/search", h.search)
	authed.POST("/assets", h.create)
	authed.GET("/assets/:id/logo", h.logo)
	authed.GET("/prices/health", h.priceHealth)
}

// @Summary Search assets
// @Tags assets
// @Param q query string true "query"
// @Success 200 {object} apiResponse
// @Router /api/assets/search [get]
func (h *AssetHandler) search(c *gin.Context) {
	q := strQuery(c, "q", "")
	if q == "" {
		Error(c, http.StatusBadRequest, "q is required", nil)
		return
	}
	items, err := h.Client.SearchAssets(c.Request.Context(), q)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, items, nil)
}

func (h *AssetHandler) create(c *gin.Context) {
	var body folio.AssetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid asset payload", nil)
		return
	}
	asset, err := h.Client.CreateAsset(c.Request.Context(), body)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, asset, nil)
}

// @Summary Asset logo with icon fallback
// @Tags assets
// @Param id path int true "asset id"
// @Param name query string false "asset name hint"
// @Param type query string false "asset type hint"
// @Success 200 {object} apiResponse
// @Router /api/assets/{id}/logo [get]
func (h *AssetHandler) logo(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	name := strQuery(c, "name", "")
	assetType := strQuery(c, "type", "")

	url := h.Logos.Resolve(c.Request.Context(), id, name, assetType)
	Ok(c, gin.H{
		"url":  url,         // empty when unresolved; the client hides the img
		"icon": icon.For(assetType),
	}, nil)
}

// @Summary Price data freshness
// @Tags assets
// @Success 200 {object} apiResponse
// @Router /api/prices/health [get]
func (h *AssetHandler) priceHealth(c *gin.Context) {
	items, err := h.Client.PriceHealth(c.Request.Context())
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, items, nil)
}
