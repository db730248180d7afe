package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"folioboard/internal/client/folio"
	"folioboard/internal/models"
	"folioboard/internal/session"
)

type stubNotificationAPI struct {
	countByToken map[string]int
	err          error
	calls        int
}

func (a *stubNotificationAPI) ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error) {
	return nil, nil
}

func (a *stubNotificationAPI) UnreadCount(ctx context.Context) (int, error) {
	a.calls++
	if a.err != nil {
		return 0, a.err
	}
	return a.countByToken[folio.TokenFromContext(ctx)], nil
}

func (a *stubNotificationAPI) MarkNotificationRead(ctx context.Context, id uint64) error { return nil }
func (a *stubNotificationAPI) MarkAllNotificationsRead(ctx context.Context) error       { return nil }
func (a *stubNotificationAPI) DeleteNotification(ctx context.Context, id uint64) error  { return nil }

func newNotificationService(t *testing.T, api notificationAPI) (*NotificationService, *session.Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := session.NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Hour)
	return &NotificationService{API: api, Sessions: store, Guard: NewLatestGuard()}, store
}

func TestRefreshAllPopulatesBadgeCache(t *testing.T) {
	api := &stubNotificationAPI{countByToken: map[string]int{"tok-a": 3, "tok-b": 0}}
	svc, store := newNotificationService(t, api)
	ctx := context.Background()

	a, _ := store.Create(ctx, 1, "a@b.c", "tok-a")
	b, _ := store.Create(ctx, 2, "b@b.c", "tok-b")

	if err := svc.RefreshAll(ctx); err != nil {
		t.Fatalf("refresh all: %v", err)
	}

	if n, ok, _ := store.UnreadCount(ctx, a.ID); !ok || n != 3 {
		t.Fatalf("session a badge = %d ok=%v, want 3", n, ok)
	}
	if n, ok, _ := store.UnreadCount(ctx, b.ID); !ok || n != 0 {
		t.Fatalf("session b badge = %d ok=%v, want 0", n, ok)
	}
}

func TestRefreshAllSurvivesBackendError(t *testing.T) {
	api := &stubNotificationAPI{err: errors.New("backend down")}
	svc, store := newNotificationService(t, api)
	ctx := context.Background()

	sess, _ := store.Create(ctx, 1, "a@b.c", "tok")

	if err := svc.RefreshAll(ctx); err != nil {
		t.Fatalf("refresh all should not fail on per-session errors: %v", err)
	}
	if _, ok, _ := store.UnreadCount(ctx, sess.ID); ok {
		t.Fatalf("failed poll should leave the cache cold")
	}
}

func TestBadgePrefersCache(t *testing.T) {
	api := &stubNotificationAPI{countByToken: map[string]int{"tok": 9}}
	svc, store := newNotificationService(t, api)
	ctx := context.Background()

	sess, _ := store.Create(ctx, 1, "a@b.c", "tok")
	if err := store.SetUnreadCount(ctx, sess.ID, 4); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	n, err := svc.Badge(ctx, sess)
	if err != nil {
		t.Fatalf("badge: %v", err)
	}
	if n != 4 {
		t.Fatalf("badge = %d, want cached 4", n)
	}
	if api.calls != 0 {
		t.Fatalf("cache hit still called the backend %d times", api.calls)
	}
}

func TestBadgeFallsThroughOnColdCache(t *testing.T) {
	api := &stubNotificationAPI{countByToken: map[string]int{"tok": 9}}
	svc, store := newNotificationService(t, api)
	ctx := context.Background()

	sess, _ := store.Create(ctx, 1, "a@b.c", "tok")

	n, err := svc.Badge(ctx, sess)
	if err != nil {
		t.Fatalf("badge: %v", err)
	}
	if n != 9 {
		t.Fatalf("badge = %d, want 9", n)
	}
	// The fetched value lands in the cache for the next read.
	if cached, ok, _ := store.UnreadCount(ctx, sess.ID); !ok || cached != 9 {
		t.Fatalf("cache after miss = %d ok=%v", cached, ok)
	}
}

func TestMarkAllReadZeroesBadge(t *testing.T) {
	api := &stubNotificationAPI{countByToken: map[string]int{"tok": 9}}
	svc, store := newNotificationService(t, api)
	ctx := context.Background()

	sess, _ := store.Create(ctx, 1, "a@b.c", "tok")
	_ = store.SetUnreadCount(ctx, sess.ID, 9)

	if err := svc.MarkAllRead(ctx, sess); err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if n, ok, _ := store.UnreadCount(ctx, sess.ID); !ok || n != 0 {
		t.Fatalf("badge after mark-all = %d ok=%v, want 0", n, ok)
	}
}
