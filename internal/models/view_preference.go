package models

import "time"

// ViewPreference stores a user's table and chart settings so the dashboard
// renders the same way across devices. One row per user+table.
type ViewPreference struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_view_pref_user_table" json:"user_id"`
	Table        string    `gorm:"column:table_name;type:varchar(40);not null;uniqueIndex:idx_view_pref_user_table" json:"table"`
	SortKey      string    `gorm:"type:varchar(40)" json:"sort_key"`
	SortDir      string    `gorm:"type:varchar(4)" json:"sort_dir"`
	ChartPeriod  string    `gorm:"type:varchar(8)" json:"chart_period"`
	BaseCurrency string    `gorm:"type:varchar(3)" json:"base_currency"`
	UpdatedAt    time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}

func (ViewPreference) TableName() string {
	return "view_preferences"
}
