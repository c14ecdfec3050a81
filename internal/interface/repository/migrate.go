package repository

import (
	"gorm.io/gorm"
)

// Migrate creates or updates the relational schema
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&SearchLogs{},
		&Selections{},
		&Bookings{},
		&Passengers{},
		&Payments{},
	)
}
