package service

import (
	"context"

	"go.uber.org/zap"

	"folioboard/internal/client/folio"
	"folioboard/internal/models"
	"folioboard/internal/session"
)

type notificationAPI interface {
	ListNotifications(ctx context.Context, unreadOnly bool, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context) (int, error)
	MarkNotificationRead(ctx context.Context, id uint64) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id uint64) error
}

// NotificationService drives the bell menu and keeps the unread badge cache
// warm. The cron loop calls RefreshAll every poll interval; interactive
// reads hit the cache first and only fall through to the backend on a miss.
type NotificationService struct {
	API      notificationAPI
	Sessions *session.Store
	Guard    *LatestGuard
	Logger   *zap.Logger
}

// Badge returns the unread count for one session, serving the cached value
// when the poll loop has already populated it.
func (s *NotificationService) Badge(ctx context.Context, sess *session.Session) (int, error) {
	if s.Sessions != nil {
		if n, ok, err := s.Sessions.UnreadCount(ctx, sess.ID); err == nil && ok {
			return n, nil
		}
	}
	count, err := s.API.UnreadCount(folio.WithToken(ctx, sess.Token))
	if err != nil {
		return 0, err
	}
	if s.Sessions != nil {
		if err := s.Sessions.SetUnreadCount(ctx, sess.ID, count); err != nil && s.Logger != nil {
			s.Logger.Warn("unread cache write failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}
	return count, nil
}

// List returns the bell-menu rows for one session.
func (s *NotificationService) List(ctx context.Context, sess *session.Session, unreadOnly bool, limit int) ([]models.Notification, error) {
	return s.API.ListNotifications(folio.WithToken(ctx, sess.Token), unreadOnly, limit)
}

// MarkRead marks one notification and invalidates the cached badge so the
// next Badge call refetches.
func (s *NotificationService) MarkRead(ctx context.Context, sess *session.Session, id uint64) error {
	if err := s.API.MarkNotificationRead(folio.WithToken(ctx, sess.Token), id); err != nil {
		return err
	}
	s.refreshOne(ctx, sess)
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, sess *session.Session) error {
	if err := s.API.MarkAllNotificationsRead(folio.WithToken(ctx, sess.Token)); err != nil {
		return err
	}
	if s.Sessions != nil {
		if err := s.Sessions.SetUnreadCount(ctx, sess.ID, 0); err != nil && s.Logger != nil {
			s.Logger.Warn("unread cache write failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, sess *session.Session, id uint64) error {
	if err := s.API.DeleteNotification(folio.WithToken(ctx, sess.Token), id); err != nil {
		return err
	}
	s.refreshOne(ctx, sess)
	return nil
}

// RefreshAll re-polls the unread count for every active session. Stale
// results lose: a fetch that finishes after a newer one started for the same
// session discards its count instead of overwriting.
func (s *NotificationService) RefreshAll(ctx context.Context) error {
	if s == nil || s.Sessions == nil {
		return nil
	}
	ids, err := s.Sessions.ActiveIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range ids {
		sess, err := s.Sessions.Get(ctx, id)
		if err != nil {
			continue // expired between listing and fetch
		}
		s.refreshOne(ctx, sess)
	}
	return nil
}

func (s *NotificationService) refreshOne(ctx context.Context, sess *session.Session) {
	var gen uint64
	key := "unread:" + sess.ID
	if s.Guard != nil {
		gen = s.Guard.Begin(key)
	}
	count, err := s.API.UnreadCount(folio.WithToken(ctx, sess.Token))
	if err != nil {
		if s.Logger != nil {
			s.Logger.Warn("unread poll failed", zap.String("session_id", sess.ID), zap.Error(err))
		}
		return
	}
	if s.Guard != nil && !s.Guard.Commit(key, gen) {
		return
	}
	if err := s.Sessions.SetUnreadCount(ctx, sess.ID, count); err != nil && s.Logger != nil {
		s.Logger.Warn("unread cache write failed", zap.String("session_id", sess.ID), zap.Error(err))
	}
}
