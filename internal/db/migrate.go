package db

import (
	"folioboard/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.ShareLink{},
		&models.ShareSnapshot{},
		&models.ViewPreference{},
	)
}
