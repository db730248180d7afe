package gormrepository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"folioboard/internal/models"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) CreateShareLink(ctx context.Context, link *models.ShareLink) error {
	if s == nil || s.db == nil || link == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(link).Error
}

func (s *Store) GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var link models.ShareLink
	err := s.db.WithContext(ctx).
		Where("token = ? AND revoked_at IS NULL", token).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (s *Store) ListShareLinksByOwner(ctx context.Context, ownerUserID uint64) ([]models.ShareLink, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var links []models.ShareLink
	err := s.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		Order("created_at DESC").
		Find(&links).Error
	return links, err
}

func (s *Store) ListActiveShareLinks(ctx context.Context) ([]models.ShareLink, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var links []models.ShareLink
	err := s.db.WithContext(ctx).
		Where("revoked_at IS NULL").
		Find(&links).Error
	return links, err
}

func (s *Store) RevokeShareLink(ctx context.Context, id uint64) error {
	if s == nil || s.db == nil {
		return nil
	}
	now := time.Now().UTC()
	return s.db.WithContext(ctx).
		Model(&models.ShareLink{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now).Error
}

func (s *Store) UpsertShareSnapshot(ctx context.Context, snap *models.ShareSnapshot) error {
	if s == nil || s.db == nil || snap == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "share_link_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "captured_at"}),
	}).Create(snap).Error
}

func (s *Store) GetShareSnapshot(ctx context.Context, shareLinkID uint64) (*models.ShareSnapshot, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var snap models.ShareSnapshot
	err := s.db.WithContext(ctx).
		Where("share_link_id = ?", shareLinkID).
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) UpsertViewPreference(ctx context.Context, pref *models.ViewPreference) error {
	if s == nil || s.db == nil || pref == nil {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "table_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"sort_key", "sort_dir", "chart_period", "base_currency", "updated_at"}),
	}).Create(pref).Error
}

func (s *Store) GetViewPreference(ctx context.Context, userID uint64, table string) (*models.ViewPreference, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var pref models.ViewPreference
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND table_name = ?", userID, table).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

func (s *Store) ListViewPreferences(ctx context.Context, userID uint64) ([]models.ViewPreference, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var prefs []models.ViewPreference
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&prefs).Error
	return prefs, err
}
