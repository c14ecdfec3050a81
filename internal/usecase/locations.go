package usecase

import (
	"context"

	"flightbook-service/internal/domain/entity"
)

// Locations looks up airports and cities by keyword.
func (u *FlightUsecase) Locations(ctx context.Context, sess *entity.Session, keyword string) (map[string]interface{}, error) {
	if keyword == "" {
		return nil, ErrMissingKeyword
	}

	result, err := u.client.SearchLocations(ctx, keyword, sess)
	if err != nil {
		u.saveSession(ctx, sess)
		return nil, err
	}

	u.saveSession(ctx, sess)
	return result, nil
}
