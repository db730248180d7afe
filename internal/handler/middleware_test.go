package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"folioboard/internal/client/folio"
	"folioboard/internal/config"
	"folioboard/internal/session"
)

func newAuthedEngine(t *testing.T) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mr := miniredis.RunT(t)
	store := session.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)

	r := gin.New()
	authed := r.Group("/api", SessionMiddleware(store, config.SessionConfig{CookieName: "folio_session"}))
	authed.GET("/whoami", func(c *gin.Context) {
		sess := CurrentSession(c)
		Ok(c, gin.H{
			"email": sess.Email,
			"token": folio.TokenFromContext(c.Request.Context()),
		}, nil)
	})
	return r, store
}

func TestSessionMiddlewareRejectsAnonymous(t *testing.T) {
	r, _ := newAuthedEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSessionMiddlewareRejectsExpired(t *testing.T) {
	r, _ := newAuthedEngine(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "folio_session", Value: "gone"})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestSessionMiddlewareThreadsToken(t *testing.T) {
	r, store := newAuthedEngine(t)
	sess, err := store.Create(t.Context(), 7, "kim@example.com", "backend-token")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "folio_session", Value: sess.ID})
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			Email string `json:"email"`
			Token string `json:"token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Email != "kim@example.com" {
		t.Fatalf("email = %q", resp.Data.Email)
	}
	if resp.Data.Token != "backend-token" {
		t.Fatalf("bearer token not on request context: %q", resp.Data.Token)
	}
}

func TestSessionMiddlewareHeaderFallback(t *testing.T) {
	r, store := newAuthedEngine(t)
	sess, err := store.Create(t.Context(), 1, "a@b.c", "tok")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("X-Session-ID", sess.ID)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
