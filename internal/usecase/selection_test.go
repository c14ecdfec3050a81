package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flightbook-service/internal/domain/entity"
)

func offerFixture() map[string]interface{} {
	return map[string]interface{}{
		"id":    "O1",
		"price": map[string]interface{}{"total": "100", "currency": "USD"},
		"itineraries": []interface{}{
			map[string]interface{}{
				"duration": "PT3H",
				"segments": []interface{}{
					map[string]interface{}{
						"carrierCode": "MH",
						"number":      "710",
						"departure":   map[string]interface{}{"iataCode": "CGK", "at": "2026-12-12T11:00:00"},
						"arrival":     map[string]interface{}{"iataCode": "KUL", "at": "2026-12-12T14:00:00"},
					},
				},
			},
		},
	}
}

func sessionWithResults(offers ...interface{}) *entity.Session {
	return &entity.Session{
		ID:          "s1",
		SearchLogID: 5,
		Results:     map[string]interface{}{"data": offers},
	}
}

func TestGetSelection_MissingIndex(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetSelection(context.Background(), sessionWithResults(), "")

	assert.ErrorIs(t, err, ErrMissingIndex)
}

func TestGetSelection_InvalidIndex(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetSelection(context.Background(), sessionWithResults(), "abc")

	assert.ErrorIs(t, err, ErrInvalidIndex)
}

func TestGetSelection_NoActiveSearch(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetSelection(context.Background(), nil, "0")
	assert.ErrorIs(t, err, ErrNoActiveSearch)

	_, err = f.uc.GetSelection(context.Background(), &entity.Session{ID: "s1"}, "0")
	assert.ErrorIs(t, err, ErrNoActiveSearch)
}

func TestGetSelection_EmptyResults(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetSelection(context.Background(), sessionWithResults(), "0")

	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestGetSelection_OutOfRange(t *testing.T) {
	f := newFixture()

	_, err := f.uc.GetSelection(context.Background(), sessionWithResults(offerFixture()), "5")

	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestGetSelection_SnapshotsOffer(t *testing.T) {
	f := newFixture()
	f.allowBookkeeping()
	sess := sessionWithResults(offerFixture())

	f.selections.On("Create", mock.Anything, mock.MatchedBy(func(sel *entity.Selection) bool {
		return sel.SearchLogID == 5 &&
			sel.AirlineCode == "MH" &&
			sel.FlightNumber == "710" &&
			sel.Origin == "CGK" &&
			sel.Destination == "KUL" &&
			sel.PriceTotal == "100" &&
			sel.Currency == "USD" &&
			sel.ProviderOfferID == "O1" &&
			sel.DepartureTime.Equal(time.Date(2026, 12, 12, 11, 0, 0, 0, time.UTC))
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Selection).ID = 42
	}).Return(nil)

	result, err := f.uc.GetSelection(context.Background(), sess, "0")

	require.NoError(t, err)
	require.NotNil(t, result.Selection)
	assert.Equal(t, uint(42), sess.SelectionID)
	assert.Equal(t, "O1", result.Offer["id"])
}

func TestGetSelection_SnapshotFailureStillReturnsOffer(t *testing.T) {
	f := newFixture()
	sess := sessionWithResults(offerFixture())

	f.selections.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	result, err := f.uc.GetSelection(context.Background(), sess, "0")

	require.NoError(t, err)
	assert.Nil(t, result.Selection)
	assert.Equal(t, "O1", result.Offer["id"])
	assert.Zero(t, sess.SelectionID)
}
