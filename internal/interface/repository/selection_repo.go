package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/domain/repository"
)

// GormSelectionRepository implements the SelectionRepository interface
type GormSelectionRepository struct {
	db *gorm.DB
}

// NewGormSelectionRepository creates a new GORM selection repository
func NewGormSelectionRepository(db *gorm.DB) repository.SelectionRepository {
	return &GormSelectionRepository{
		db: db,
	}
}

// Selections GORM model for database mapping
type Selections struct {
	ID              uint      `gorm:"primaryKey"`
	SearchLogID     uint      `gorm:"column:search_log_id;index"`
	AirlineCode     string    `gorm:"column:airline_code;size:10"`
	FlightNumber    string    `gorm:"column:flight_number;size:20"`
	Origin          string    `gorm:"column:origin;size:10"`
	Destination     string    `gorm:"column:destination;size:10"`
	DepartureTime   time.Time `gorm:"column:departure_time"`
	ArrivalTime     time.Time `gorm:"column:arrival_time"`
	Duration        string    `gorm:"column:duration;size:20"`
	PriceTotal      string    `gorm:"column:price_total"`
	Currency        string    `gorm:"column:currency;size:10"`
	ProviderOfferID string    `gorm:"column:provider_offer_id;size:255"`
	CreatedAt       time.Time
}

// TableName overrides the default table name
func (Selections) TableName() string {
	return "flight_selections"
}

// Create persists a selection snapshot
func (r *GormSelectionRepository) Create(ctx context.Context, sel *entity.Selection) error {
	row := Selections{
		SearchLogID:     sel.SearchLogID,
		AirlineCode:     sel.AirlineCode,
		FlightNumber:    sel.FlightNumber,
		Origin:          sel.Origin,
		Destination:     sel.Destination,
		DepartureTime:   sel.DepartureTime,
		ArrivalTime:     sel.ArrivalTime,
		Duration:        sel.Duration,
		PriceTotal:      sel.PriceTotal,
		Currency:        sel.Currency,
		ProviderOfferID: sel.ProviderOfferID,
	}

	result := r.db.WithContext(ctx).Create(&row)
	if result.Error != nil {
		return result.Error
	}

	sel.ID = row.ID
	sel.CreatedAt = row.CreatedAt
	return nil
}

// GetByID finds a selection by id, returning nil when absent
func (r *GormSelectionRepository) GetByID(ctx context.Context, id uint) (*entity.Selection, error) {
	var row Selections
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entity.Selection{
		ID:              row.ID,
		SearchLogID:     row.SearchLogID,
		AirlineCode:     row.AirlineCode,
		FlightNumber:    row.FlightNumber,
		Origin:          row.Origin,
		Destination:     row.Destination,
		DepartureTime:   row.DepartureTime,
		ArrivalTime:     row.ArrivalTime,
		Duration:        row.Duration,
		PriceTotal:      row.PriceTotal,
		Currency:        row.Currency,
		ProviderOfferID: row.ProviderOfferID,
		CreatedAt:       row.CreatedAt,
	}, nil
}
