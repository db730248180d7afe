package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/service"
)

type NotificationHandler struct {
	Notifications *service.NotificationService
	Logger        *zap.Logger
}

func (h *NotificationHandler) Register(authed *gin.RouterGroup) {
	authed.GET("/notifications", h.list)
	authed.GET("/notifications/unread-count", h.badge)
	authed.POST("/notifications/:id/read", h.markRead)
	authed.POST("/notifications/read-all", h.markAllRead)
	authed.DELETE("/notifications/:id", h.remove)
}

// @Summary Notification list
// @Tags notifications
// @Param unread_only query bool false "only unread"
// @Param limit query int false "page size"
// @Success 200 {object} apiResponse
// @Router /api/notifications [get]
func (h *NotificationHandler) list(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	items, err := h.Notifications.List(c.Request.Context(), sess,
		boolQueryDefault(c, "unread_only", false), intQuery(c, "limit", 20))
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, items, nil)
}

// @Summary Unread badge count
// @Tags notifications
// @Success 200 {object} apiResponse
// @Router /api/notifications/unread-count [get]
func (h *NotificationHandler) badge(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	count, err := h.Notifications.Badge(c.Request.Context(), sess)
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, gin.H{"count": count}, nil)
}

func (h *NotificationHandler) markRead(c *gin.Context) {
	sess := CurrentSession(c)
	id := uint64Param(c, "id")
	if sess == nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Notifications.MarkRead(c.Request.Context(), sess, id); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *NotificationHandler) markAllRead(c *gin.Context) {
	sess := CurrentSession(c)
	if sess == nil {
		Error(c, http.StatusUnauthorized, "not signed in", nil)
		return
	}
	if err := h.Notifications.MarkAllRead(c.Request.Context(), sess); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *NotificationHandler) remove(c *gin.Context) {
	sess := CurrentSession(c)
	id := uint64Param(c, "id")
	if sess == nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return
	}
	if err := h.Notifications.Delete(c.Request.Context(), sess, id); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}
