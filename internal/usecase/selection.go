package usecase

import (
	"context"
	"strconv"
	"time"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/pkg/jsonutil"
)

// providerTimeLayout is the zone-less local timestamp format of provider
// itineraries.
const providerTimeLayout = "2006-01-02T15:04:05"

// SelectionResult is the offer chosen by index plus its durable snapshot.
// Selection is nil when snapshot persistence was skipped.
type SelectionResult struct {
	Offer     map[string]interface{}
	Selection *entity.Selection
}

// GetSelection resolves the offer at the given index of the session's last
// search results and snapshots it as a Selection. A new selection replaces
// the session pointer; earlier records stay. Snapshot persistence failures
// are logged and skipped, the offer is still returned.
func (u *FlightUsecase) GetSelection(ctx context.Context, sess *entity.Session, idxParam string) (*SelectionResult, error) {
	if idxParam == "" {
		return nil, ErrMissingIndex
	}
	idx, err := strconv.Atoi(idxParam)
	if err != nil {
		return nil, ErrInvalidIndex
	}

	if sess == nil || sess.Results == nil {
		return nil, ErrNoActiveSearch
	}

	offer := jsonutil.MapAt(jsonutil.GetSlice(sess.Results, "data"), idx)
	if offer == nil {
		return nil, ErrOfferNotFound
	}

	result := &SelectionResult{Offer: offer}

	sel := selectionFromOffer(offer, sess.SearchLogID)
	if err := u.selectionRepo.Create(ctx, sel); err != nil {
		u.logger.Warn("Failed to persist selection snapshot", "error", err)
		u.countError("selection")
		return result, nil
	}

	result.Selection = sel
	sess.SelectionID = sel.ID
	u.saveSession(ctx, sess)
	return result, nil
}

// selectionFromOffer snapshots the essential fields of the first segment of
// the first itinerary.
func selectionFromOffer(offer map[string]interface{}, searchLogID uint) *entity.Selection {
	itineraries := jsonutil.GetSlice(offer, "itineraries")
	firstItin := jsonutil.MapAt(itineraries, 0)
	firstSeg := jsonutil.MapAt(jsonutil.GetSlice(firstItin, "segments"), 0)
	departure := jsonutil.GetMap(firstSeg, "departure")
	arrival := jsonutil.GetMap(firstSeg, "arrival")
	price := jsonutil.GetMap(offer, "price")

	departureTime, _ := time.Parse(providerTimeLayout, jsonutil.GetString(departure, "at"))
	arrivalTime, _ := time.Parse(providerTimeLayout, jsonutil.GetString(arrival, "at"))

	return &entity.Selection{
		SearchLogID:     searchLogID,
		AirlineCode:     jsonutil.GetString(firstSeg, "carrierCode"),
		FlightNumber:    jsonutil.GetString(firstSeg, "number"),
		Origin:          jsonutil.GetString(departure, "iataCode"),
		Destination:     jsonutil.GetString(arrival, "iataCode"),
		DepartureTime:   departureTime,
		ArrivalTime:     arrivalTime,
		Duration:        jsonutil.GetString(firstItin, "duration"),
		PriceTotal:      jsonutil.GetString(price, "total"),
		Currency:        jsonutil.GetString(price, "currency"),
		ProviderOfferID: jsonutil.GetString(offer, "id"),
	}
}
