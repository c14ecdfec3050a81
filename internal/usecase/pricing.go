package usecase

import (
	"context"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/pkg/jsonutil"
)

// Price re-quotes one offer through the provider's pricing endpoint. The
// result is authoritative for the final amount; callers fall back to the
// offer's own price when pricing fails.
func (u *FlightUsecase) Price(ctx context.Context, sess *entity.Session, offer map[string]interface{}) (map[string]interface{}, error) {
	if offer == nil {
		return nil, ErrMissingOffer
	}

	priced, err := u.client.PriceOffer(ctx, offer, sess)
	if err != nil {
		u.saveSession(ctx, sess)
		return nil, err
	}

	u.archive(ctx, sessionID(sess), entity.DocumentKindPricing, "/v1/shopping/flight-offers/pricing", priced)
	u.saveSession(ctx, sess)
	return priced, nil
}

// ResolvePrice extracts the final amount and currency: the pricing result
// when present, the original offer's price otherwise.
func ResolvePrice(priced, offer map[string]interface{}) (string, string) {
	if priced != nil {
		data := jsonutil.GetMap(priced, "data")
		first := jsonutil.MapAt(jsonutil.GetSlice(data, "flightOffers"), 0)
		price := jsonutil.GetMap(first, "price")
		total := jsonutil.GetString(price, "total")
		cur := jsonutil.GetString(price, "currency")
		if total != "" && cur != "" {
			return total, cur
		}
	}

	price := jsonutil.GetMap(offer, "price")
	return jsonutil.GetString(price, "total"), jsonutil.GetString(price, "currency")
}
