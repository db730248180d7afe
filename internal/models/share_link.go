package models

import (
	"time"

	"gorm.io/datatypes"
)

// ShareLink maps an opaque public token to a portfolio. This is the only
// portfolio-related state Folioboard persists itself; everything else lives
// in the backend.
type ShareLink struct {
	ID          uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Token       string     `gorm:"type:varchar(64);not null;uniqueIndex" json:"token"`
	OwnerUserID uint64     `gorm:"not null;index" json:"owner_user_id"`
	PortfolioID uint64     `gorm:"not null;index" json:"portfolio_id"`
	Title       string     `gorm:"type:varchar(120)" json:"title"`
	CreatedAt   time.Time  `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	RevokedAt   *time.Time `gorm:"type:timestamptz" json:"revoked_at,omitempty"`
}

func (ShareLink) TableName() string {
	return "share_links"
}

// ShareSnapshot is the captured view served on the public page. Public
// requests carry no bearer token, so the page renders from this snapshot
// rather than a live backend fetch.
type ShareSnapshot struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	ShareLinkID uint64         `gorm:"not null;uniqueIndex" json:"share_link_id"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	CapturedAt  time.Time      `gorm:"type:timestamptz;not null" json:"captured_at"`
}

func (ShareSnapshot) TableName() string {
	return "share_snapshots"
}
