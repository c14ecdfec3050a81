package repository

import (
	"context"

	"flightbook-service/internal/domain/entity"
)

// SearchLogRepository defines persistence for search logs
type SearchLogRepository interface {
	Create(ctx context.Context, log *entity.SearchLog) error
}

// SelectionRepository defines persistence for offer selections
type SelectionRepository interface {
	Create(ctx context.Context, sel *entity.Selection) error
	GetByID(ctx context.Context, id uint) (*entity.Selection, error)
}
