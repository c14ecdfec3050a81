package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/domain/repository"
)

// GormSearchLogRepository implements the SearchLogRepository interface
type GormSearchLogRepository struct {
	db *gorm.DB
}

// NewGormSearchLogRepository creates a new GORM search log repository
func NewGormSearchLogRepository(db *gorm.DB) repository.SearchLogRepository {
	return &GormSearchLogRepository{
		db: db,
	}
}

// SearchLogs GORM model for database mapping
type SearchLogs struct {
	ID            uint       `gorm:"primaryKey"`
	Origin        string     `gorm:"column:origin;size:10"`
	Destination   string     `gorm:"column:destination;size:10"`
	DepartureDate time.Time  `gorm:"column:departure_date"`
	ReturnDate    *time.Time `gorm:"column:return_date"`
	IsRoundTrip   bool       `gorm:"column:is_round_trip"`
	CreatedAt     time.Time
}

// TableName overrides the default table name
func (SearchLogs) TableName() string {
	return "flight_search_logs"
}

// Create persists a search log
func (r *GormSearchLogRepository) Create(ctx context.Context, log *entity.SearchLog) error {
	row := SearchLogs{
		Origin:        log.Origin,
		Destination:   log.Destination,
		DepartureDate: log.DepartureDate,
		ReturnDate:    log.ReturnDate,
		IsRoundTrip:   log.IsRoundTrip,
	}

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return result.Error
	}

	log.ID = row.ID
	log.CreatedAt = row.CreatedAt
	return nil
}
