package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"flightbook-service/internal/domain/entity"
)

func TestPrice_MissingOffer(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Price(context.Background(), &entity.Session{ID: "s1"}, nil)

	assert.ErrorIs(t, err, ErrMissingOffer)
}

func TestPrice_ArchivesResult(t *testing.T) {
	f := newFixture()
	sess := &entity.Session{ID: "s1"}
	offer := offerFixture()
	priced := map[string]interface{}{"data": map[string]interface{}{}}

	f.client.On("PriceOffer", mock.Anything, offer, sess).Return(priced, nil)
	f.sessions.On("Save", mock.Anything, sess).Return(nil)
	f.archive.On("Archive", mock.Anything, mock.MatchedBy(func(doc *entity.ArchivedDocument) bool {
		return doc.Kind == entity.DocumentKindPricing && doc.SessionID == "s1"
	})).Return(nil)

	result, err := f.uc.Price(context.Background(), sess, offer)

	require.NoError(t, err)
	assert.Equal(t, priced, result)
	f.archive.AssertExpectations(t)
}

func TestResolvePrice(t *testing.T) {
	offer := map[string]interface{}{
		"price": map[string]interface{}{"total": "100.00", "currency": "USD"},
	}
	priced := map[string]interface{}{
		"data": map[string]interface{}{
			"flightOffers": []interface{}{
				map[string]interface{}{
					"price": map[string]interface{}{"total": "110.00", "currency": "EUR"},
				},
			},
		},
	}

	total, cur := ResolvePrice(priced, offer)
	assert.Equal(t, "110.00", total)
	assert.Equal(t, "EUR", cur)

	// Pricing absent or incomplete falls back to the offer's own price.
	total, cur = ResolvePrice(nil, offer)
	assert.Equal(t, "100.00", total)
	assert.Equal(t, "USD", cur)

	total, cur = ResolvePrice(map[string]interface{}{"data": map[string]interface{}{}}, offer)
	assert.Equal(t, "100.00", total)
	assert.Equal(t, "USD", cur)
}
