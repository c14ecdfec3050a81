package usecase

import (
	"sort"
	"strconv"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/pkg/currency"
	"flightbook-service/pkg/jsonutil"
	"flightbook-service/pkg/logger"
)

// OfferNormalizer post-processes raw provider offers: display-currency
// annotation, seat/validating-carrier analysis, filtering and ordering. It
// is the only component that produces these annotations.
type OfferNormalizer struct {
	converter *currency.Converter
	logger    logger.Logger
}

// NewOfferNormalizer creates a new offer normalizer
func NewOfferNormalizer(converter *currency.Converter, log logger.Logger) *OfferNormalizer {
	return &OfferNormalizer{
		converter: converter,
		logger:    log,
	}
}

// Annotate enriches each offer in place and drops the unbookable ones: an
// offer with a known seat count of zero or less, or whose validating
// carriers never operate a segment, is excluded. Original price fields are
// left untouched.
func (n *OfferNormalizer) Annotate(data []interface{}) []map[string]interface{} {
	offers := make([]map[string]interface{}, 0, len(data))

	for i := range data {
		offer := jsonutil.MapAt(data, i)
		if offer == nil {
			continue
		}

		analysis := n.analyze(offer)
		offer["analysis"] = analysis

		price := jsonutil.GetMap(offer, "price")
		if total, ok := jsonutil.GetNumber(price, "total"); ok {
			_, formatted := n.converter.ToDisplay(total, jsonutil.GetString(price, "currency"))
			offer["displayPrice"] = formatted
			offer["displayCurrency"] = n.converter.DisplayCurrency()
		}

		if analysis.BookableSeats != nil && *analysis.BookableSeats <= 0 {
			continue
		}
		if analysis.ValidatingMismatch {
			continue
		}

		offers = append(offers, offer)
	}

	return offers
}

// SortByDeparture orders offers ascending by the departure timestamp of the
// first segment of the first itinerary. Offers without a parseable departure
// sort first.
func (n *OfferNormalizer) SortByDeparture(offers []map[string]interface{}) {
	sort.SliceStable(offers, func(i, j int) bool {
		return departureKey(offers[i]) < departureKey(offers[j])
	})
}

func (n *OfferNormalizer) analyze(offer map[string]interface{}) entity.OfferAnalysis {
	var analysis entity.OfferAnalysis

	if raw, present := offer["numberOfBookableSeats"]; present {
		if seats, ok := parseSeats(raw); ok {
			analysis.BookableSeats = &seats
		}
	}

	validating := jsonutil.GetSlice(offer, "validatingAirlineCodes")
	if len(validating) > 0 {
		carriers := segmentCarriers(offer)
		mismatch := true
		for _, v := range validating {
			code, ok := v.(string)
			if ok && carriers[code] {
				mismatch = false
				break
			}
		}
		analysis.ValidatingMismatch = mismatch
	}

	return analysis
}

func parseSeats(raw interface{}) (int, bool) {
	switch v := raw.(type) {
	case float64:
		return int(v), true
	case string:
		seats, err := strconv.Atoi(v)
		return seats, err == nil
	}
	return 0, false
}

func segmentCarriers(offer map[string]interface{}) map[string]bool {
	carriers := make(map[string]bool)
	itineraries := jsonutil.GetSlice(offer, "itineraries")
	for i := range itineraries {
		segments := jsonutil.GetSlice(jsonutil.MapAt(itineraries, i), "segments")
		for j := range segments {
			if code := jsonutil.GetString(jsonutil.MapAt(segments, j), "carrierCode"); code != "" {
				carriers[code] = true
			}
		}
	}
	return carriers
}

func departureKey(offer map[string]interface{}) string {
	itineraries := jsonutil.GetSlice(offer, "itineraries")
	segments := jsonutil.GetSlice(jsonutil.MapAt(itineraries, 0), "segments")
	departure := jsonutil.GetMap(jsonutil.MapAt(segments, 0), "departure")
	return jsonutil.GetString(departure, "at")
}
