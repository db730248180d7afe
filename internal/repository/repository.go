package repository

import (
	"context"

	"folioboard/internal/models"
)

// Repository is the dashboard's own persistence: share links with their
// public snapshots, and per-user view preferences. Portfolio data itself
// never lands here — it stays in the backend.
type Repository interface {
	CreateShareLink(ctx context.Context, link *models.ShareLink) error
	GetShareLinkByToken(ctx context.Context, token string) (*models.ShareLink, error)
	ListShareLinksByOwner(ctx context.Context, ownerUserID uint64) ([]models.ShareLink, error)
	ListActiveShareLinks(ctx context.Context) ([]models.ShareLink, error)
	RevokeShareLink(ctx context.Context, id uint64) error

	UpsertShareSnapshot(ctx context.Context, snap *models.ShareSnapshot) error
	GetShareSnapshot(ctx context.Context, shareLinkID uint64) (*models.ShareSnapshot, error)

	UpsertViewPreference(ctx context.Context, pref *models.ViewPreference) error
	GetViewPreference(ctx context.Context, userID uint64, table string) (*models.ViewPreference, error)
	ListViewPreferences(ctx context.Context, userID uint64) ([]models.ViewPreference, error)
}
