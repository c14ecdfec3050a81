package repository

import (
	"context"

	"flightbook-service/internal/domain/entity"
)

// SessionRepository stores the session-owned search/booking state.
type SessionRepository interface {
	// Get returns the session with the given id, or nil when absent or
	// expired.
	Get(ctx context.Context, id string) (*entity.Session, error)
	Save(ctx context.Context, sess *entity.Session) error
}
