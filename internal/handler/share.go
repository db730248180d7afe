package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/service"
)

type ShareHandler struct {
	Shares  *service.ShareService
	Enabled bool
	Logger  *zap.Logger
}

// Register mounts the owner-side link management on the authed group and
// the snapshot page on the public engine.
func (h *ShareHandler) Register(r *gin.Engine, authed *gin.RouterGroup) {
	authed.GET("/shares", h.list)
	authed.POST("/shares", h.create)
	authed.DELETE("/shares/:token", h.revoke)

	r.GET("/api/public/shares/:token", h.public)
}

// @Summary List my share links
// @Tags sharing
// @Success 200 {object} apiResponse
// @Router /api/shares [get]
func (h *ShareHandler) list(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	links, err := h.Shares.ListLinks(c.Request.Context(), sess.UserID)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, links, nil)
}

type createShareBody struct {
	PortfolioID uint64 `json:"portfolio_id" binding:"required"`
	Title       string `json:"title"`
}

// @Summary Create a public share link
// @Tags sharing
// @Param body body createShareBody true "portfolio to share"
// @Success 200 {object} apiResponse
// @Router /api/shares [post]
func (h *ShareHandler) create(c *gin.Context) {
	if !h.Enabled {
		Error(c, http.StatusForbidden, "sharing is disabled", nil)
		return
	}
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	var body createShareBody
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "portfolio_id is required", nil)
		return
	}

	link, err := h.Shares.CreateLink(c.Request.Context(), sess.UserID, body.PortfolioID, body.Title)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("share link created", zap.Uint64("portfolio_id", body.PortfolioID))
	}
	Ok(c, link, nil)
}

// @Summary Revoke a share link
// @Tags sharing
// @Param token path string true "share token"
// @Success 200 {object} apiResponse
// @Router /api/shares/{token} [delete]
func (h *ShareHandler) revoke(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	err := h.Shares.Revoke(c.Request.Context(), sess.UserID, c.Param("token"))
	switch {
	case errors.Is(err, service.ErrShareNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrNotLinkOwner):
		Error(c, http.StatusForbidden, err.Error(), nil)
	case err != nil:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	default:
		Ok(c, nil, nil)
	}
}

// @Summary Public portfolio snapshot
// @Tags sharing
// @Param token path string true "share token"
// @Success 200 {object} apiResponse
// @Router /api/public/shares/{token} [get]
func (h *ShareHandler) public(c *gin.Context) {
	view, err := h.Shares.Resolve(c.Request.Context(), c.Param("token"))
	if errors.Is(err, service.ErrShareNotFound) {
		Error(c, http.StatusNotFound, "share not found", nil)
		return
	}
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, view, nil)
}
