package persistence

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgres opens a GORM connection to PostgreSQL
func NewPostgres(uri string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(uri), &gorm.Config{})
}
