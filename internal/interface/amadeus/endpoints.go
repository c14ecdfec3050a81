package amadeus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"flightbook-service/internal/domain/entity"
)

const (
	searchPathV2  = "/v2/shopping/flight-offers"
	searchPathV1  = "/v1/shopping/flight-offers"
	pricingPath   = "/v1/shopping/flight-offers/pricing"
	ordersPath    = "/v1/booking/flight-orders"
	locationsPath = "/v1/reference-data/locations"

	searchMaxResults = 20
)

// SearchOffers runs a flight-offer search. The v2 endpoint is tried first;
// when the response classifies as a provider-side system error the older v1
// shape is tried with equivalent semantics.
func (c *Client) SearchOffers(ctx context.Context, q entity.SearchQuery, sess *entity.Session) (map[string]interface{}, error) {
	v2 := url.Values{}
	v2.Set("originLocationCode", strings.ToUpper(q.Origin))
	v2.Set("destinationLocationCode", strings.ToUpper(q.Destination))
	v2.Set("departureDate", q.DepartureDate)
	v2.Set("adults", fmt.Sprint(q.Adults))
	v2.Set("max", fmt.Sprint(searchMaxResults))
	if q.ReturnDate != "" {
		v2.Set("returnDate", q.ReturnDate)
	}

	result, err := c.Do(ctx, http.MethodGet, searchPathV2, v2, nil, sess)
	if err == nil {
		return result, nil
	}

	var pe *ProviderError
	if !errors.As(err, &pe) || !ShouldFallback(pe.Body, pe.StatusCode) {
		return nil, err
	}

	c.logger.Warn("v2 search failed with a provider system error, falling back to v1", "status", pe.StatusCode)

	v1 := url.Values{}
	v1.Set("origin", strings.ToUpper(q.Origin))
	v1.Set("destination", strings.ToUpper(q.Destination))
	v1.Set("departureDate", q.DepartureDate)
	v1.Set("adults", fmt.Sprint(q.Adults))
	v1.Set("max", fmt.Sprint(searchMaxResults))
	v1.Set("nonStop", "false")
	if q.ReturnDate != "" {
		v1.Set("returnDate", q.ReturnDate)
	}

	return c.Do(ctx, http.MethodGet, searchPathV1, v1, nil, sess)
}

// PriceOffer re-validates and re-quotes one offer immediately before booking.
func (c *Client) PriceOffer(ctx context.Context, offer map[string]interface{}, sess *entity.Session) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"data": map[string]interface{}{
			"type":         "flight-offers-pricing",
			"flightOffers": []interface{}{offer},
		},
	}
	return c.Do(ctx, http.MethodPost, pricingPath, nil, body, sess)
}

// CreateOrder submits the provider-side reservation for a priced offer.
func (c *Client) CreateOrder(ctx context.Context, order map[string]interface{}, sess *entity.Session) (map[string]interface{}, error) {
	body := map[string]interface{}{
		"data": order,
	}
	return c.Do(ctx, http.MethodPost, ordersPath, nil, body, sess)
}

// SearchLocations looks up airports and cities by keyword.
func (c *Client) SearchLocations(ctx context.Context, keyword string, sess *entity.Session) (map[string]interface{}, error) {
	q := url.Values{}
	q.Set("subType", "AIRPORT,CITY")
	q.Set("keyword", keyword)
	q.Set("page[limit]", "10")
	return c.Do(ctx, http.MethodGet, locationsPath, q, nil, sess)
}
