// Package session holds the dashboard's server-side sessions: an opaque
// session ID handed to the browser, mapped in redis to the backend bearer
// token. Created on login, removed on logout, expired by TTL — there is no
// ambient token state anywhere else.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session not found")

const (
	keyPrefix = "folio:session:"
	indexKey  = "folio:sessions"
	countKey  = "folio:unread:"
)

type Session struct {
	ID        string    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Create(ctx context.Context, userID uint64, email, token string) (*Session, error) {
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Email:     email,
		Token:     token,
		CreatedAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, keyPrefix+sess.ID, payload, s.ttl)
	pipe.SAdd(ctx, indexKey, sess.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, keyPrefix+id)
	pipe.SRem(ctx, indexKey, id)
	pipe.Del(ctx, countKey+id)
	_, err := pipe.Exec(ctx)
	return err
}

// Touch extends the TTL on activity so live dashboards do not expire
// mid-use.
func (s *Store) Touch(ctx context.Context, id string) error {
	return s.rdb.Expire(ctx, keyPrefix+id, s.ttl).Err()
}

// ActiveIDs lists candidate sessions for the background refreshers. IDs
// whose session has since expired are pruned from the index as a side
// effect.
func (s *Store) ActiveIDs(ctx context.Context) ([]string, error) {
	ids, err := s.rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}
	live := ids[:0]
	for _, id := range ids {
		exists, err := s.rdb.Exists(ctx, keyPrefix+id).Result()
		if err != nil {
			return nil, err
		}
		if exists == 0 {
			_ = s.rdb.SRem(ctx, indexKey, id).Err()
			continue
		}
		live = append(live, id)
	}
	return live, nil
}

// SetUnreadCount caches the notification badge value refreshed by the
// 30-second poll loop.
func (s *Store) SetUnreadCount(ctx context.Context, id string, count int) error {
	return s.rdb.Set(ctx, countKey+id, count, s.ttl).Err()
}

// UnreadCount returns the cached badge value; ok is false when no poll has
// run for this session yet.
func (s *Store) UnreadCount(ctx context.Context, id string) (int, bool, error) {
	n, err := s.rdb.Get(ctx, countKey+id).Int()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}
