package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/config"
	"folioboard/internal/session"
)

type AuthHandler struct {
	Client   *folio.Client
	Sessions *session.Store
	Cfg      config.SessionConfig
	Logger   *zap.Logger
}

func (h *AuthHandler) Register(r *gin.Engine, authed *gin.RouterGroup) {
	group := r.Group("/api/auth")
	group.POST("/login", h.login)
	group.POST("/register", h.register)
	group.POST("/verify", h.verify)
	group.POST("/password-reset/request", h.requestReset)
	group.POST("/password-reset/confirm", h.confirmReset)

	authed.POST("/auth/logout", h.logout)
	authed.GET("/auth/me", h.me)
}

type loginBody struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Sign in and open a dashboard session
// @Tags auth
// @Accept json
// @Param body body loginBody true "credentials"
// @Success 200 {object} apiResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "email and password are required", nil)
		return
	}

	token, err := h.Client.Login(c.Request.Context(), folio.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		BackendError(c, err)
		return
	}

	user, err := h.Client.CurrentUser(folio.WithToken(c.Request.Context(), token.AccessToken))
	if err != nil {
		BackendError(c, err)
		return
	}

	sess, err := h.Sessions.Create(c.Request.Context(), user.ID, user.Email, token.AccessToken)
	if err != nil {
		Error(c, http.StatusInternalServerError, "could not open session", nil)
		return
	}
	if h.Logger != nil {
		h.Logger.Info("session opened", zap.Uint64("user_id", user.ID))
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.Cfg.CookieName, sess.ID, int(h.Cfg.TTL.Seconds()), "/", "", h.Cfg.CookieSecure, true)
	Ok(c, user, map[string]any{"session_id": sess.ID})
}

// @Summary Close the current session
// @Tags auth
// @Success 200 {object} apiResponse
// @Router /api/auth/logout [post]
func (h *AuthHandler) logout(c *gin.Context) {
	sess := CurrentSession(c)
	if sess != nil {
		if err := h.Sessions.Delete(c.Request.Context(), sess.ID); err != nil && h.Logger != nil {
			h.Logger.Warn("session delete failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}
	c.SetCookie(h.Cfg.CookieName, "", -1, "/", "", h.Cfg.CookieSecure, true)
	Ok(c, nil, nil)
}

type registerBody struct {
	Email    string `json:"email" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// @Summary Create a backend account
// @Tags auth
// @Accept json
// @Param body body registerBody true "new account"
// @Success 200 {object} apiResponse
// @Router /api/auth/register [post]
func (h *AuthHandler) register(c *gin.Context) {
	var body registerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "email, username and password are required", nil)
		return
	}
	user, err := h.Client.Register(c.Request.Context(), folio.RegisterRequest{
		Email:    body.Email,
		Username: body.Username,
		Password: body.Password,
	})
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, user, nil)
}

func (h *AuthHandler) verify(c *gin.Context) {
	var body struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "token is required", nil)
		return
	}
	if err := h.Client.VerifyEmail(c.Request.Context(), body.Token); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *AuthHandler) requestReset(c *gin.Context) {
	var body struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "email is required", nil)
		return
	}
	if err := h.Client.RequestPasswordReset(c.Request.Context(), body.Email); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

func (h *AuthHandler) confirmReset(c *gin.Context) {
	var body struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		Error(c, http.StatusBadRequest, "token and new_password are required", nil)
		return
	}
	if err := h.Client.ResetPassword(c.Request.Context(), body.Token, body.NewPassword); err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, nil, nil)
}

// @Summary Current user
// @Tags auth
// @Success 200 {object} apiResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) me(c *gin.Context) {
	user, err := h.Client.CurrentUser(c.Request.Context())
	if err != nil {
		BackendError(c, err)
		return
	}
	Ok(c, user, nil)
}
