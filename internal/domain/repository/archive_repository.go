package repository

import (
	"context"

	"flightbook-service/internal/domain/entity"
)

// DocumentArchiveRepository stores raw provider responses for diagnostics.
type DocumentArchiveRepository interface {
	Archive(ctx context.Context, doc *entity.ArchivedDocument) error
}
