package model

import "gorm.io/gorm"

// Migrate creates or updates the schema for every model.
// Hati-hati di production, sebaiknya pakai tools migrasi terpisah.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Item{}, &ActivityLog{})
}
