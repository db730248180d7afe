package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, time.Hour), mr
}

func TestSessionLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, 7, "kim@example.com", "backend-token")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("empty session id")
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.UserID != 7 || got.Token != "backend-token" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}

	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); err != ErrNotFound {
		t.Fatalf("after delete err = %v, want ErrNotFound", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, 1, "a@b.c", "tok")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(2 * time.Hour)

	if _, err := store.Get(ctx, sess.ID); err != ErrNotFound {
		t.Fatalf("expired session err = %v, want ErrNotFound", err)
	}

	// The index prunes expired IDs lazily.
	ids, err := store.ActiveIDs(ctx)
	if err != nil {
		t.Fatalf("active ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expired id still listed: %v", ids)
	}
}

func TestActiveIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	a, _ := store.Create(ctx, 1, "a@b.c", "t1")
	b, _ := store.Create(ctx, 2, "b@b.c", "t2")

	ids, err := store.ActiveIDs(ctx)
	if err != nil {
		t.Fatalf("active ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("len = %d, want 2", len(ids))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[a.ID] || !seen[b.ID] {
		t.Fatalf("missing ids: %v", ids)
	}
}

func TestUnreadCountCache(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess, _ := store.Create(ctx, 1, "a@b.c", "t")

	if _, ok, err := store.UnreadCount(ctx, sess.ID); err != nil || ok {
		t.Fatalf("expected cache miss, ok=%v err=%v", ok, err)
	}

	if err := store.SetUnreadCount(ctx, sess.ID, 5); err != nil {
		t.Fatalf("set unread: %v", err)
	}
	n, ok, err := store.UnreadCount(ctx, sess.ID)
	if err != nil || !ok || n != 5 {
		t.Fatalf("unread = %d ok=%v err=%v, want 5", n, ok, err)
	}
}
