package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/models"
)

// AdminHandler proxies the backend's admin surface. Authorization is the
// backend's call: a non-admin token gets its 403 passed straight through.
type AdminHandler struct {
	Client *folio.Client
	Logger *zap.Logger
}

func (h *AdminHandler) Register(authed *gin.RouterGroup) {
	group := authed.Group("/admin")
	group.GET("/users", h.listUsers)
	group.PUT("/users/:id/role", h.updateRole)
	group.DELETE("/users/:id", h.deleteUser)
	group.GET("/email-config", h.emailConfig)
	group.PUT("/email-config", h.updateEmailConfig)
	group.POST("/email-config/test", h.sendTestEmail)
}

// @Summary List users
// @Tags admin
// @Success 200 {object} apiResponse
// @Router /api/admin/users [get]
func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.Client.AdminListUsers(c.Request.Context())
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, users, nil)
}

func (h *AdminHandler) updateRole(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	var body struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "role is required", nil)
		return
	}
	user, err := h.Client.AdminUpdateUserRole(c.Request.Context(), id, body.Role)
	if err != nil {
		BackendError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("user role updated", zap.Uint64("user_id", id), zap.String("role", body.Role))
	}
	Ok(c, user, nil)
}

func (h *AdminHandler) deleteUser(c *gin.Context) {
	id := uint64Param(c, "id")
	if id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Client.AdminDeleteUser(c.Request.Context(), id); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *AdminHandler) emailConfig(c *gin.Context) {
	cfg, err := h.Client.AdminEmailConfig(c.Request.Context())
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, cfg, nil)
}

func (h *AdminHandler) updateEmailConfig(c *gin.Context) {
	var body models.EmailConfig
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "invalid email config", nil)
		return
	}
	if err := h.Client.AdminUpdateEmailConfig(c.Request.Context(), body); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *AdminHandler) sendTestEmail(c *gin.Context) {
	var body struct {
		To string `json:"to" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "to is required", nil)
		return
	}
	if err := h.Client.AdminSendTestEmail(c.Request.Context(), body.To); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}
