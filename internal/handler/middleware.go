package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"folioboard/internal/client/folio"
	"folioboard/internal/config"
	"folioboard/internal/session"
)

const sessionKey = "folio.session"

// SessionMiddleware resolves the browser session and threads the backend
// bearer token through the request context. The token never reaches the
// browser; the cookie only carries the opaque session ID.
func SessionMiddleware(store *session.Store, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sessionID(c, cfg.CookieName)
		if id == "" {
			Error(c, http.StatusUnauthorized, "not signed in", nil)
			c.Abort()
			return
		}
		sess, err := store.Get(c.Request.Context(), id)
		if errors.Is(err, session.ErrNotFound) {
			Error(c, http.StatusUnauthorized, "session expired", nil)
			c.Abort()
			return
		}
		if err != nil {
			Error(c, http.StatusInternalServerError, "session store unavailable", nil)
			c.Abort()
			return
		}
		_ = store.Touch(c.Request.Context(), sess.ID)

		c.Set(sessionKey, sess)
		c.Request = c.Request.WithContext(folio.WithToken(c.Request.Context(), sess.Token))
		c.Next()
	}
}

func sessionID(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	// Header fallback for non-browser clients.
	return strings.TrimSpace(c.GetHeader("X-Session-ID"))
}

// CurrentSession returns the session placed by SessionMiddleware.
func CurrentSession(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}
