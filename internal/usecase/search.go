package usecase

import (
	"context"
	"time"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/pkg/jsonutil"
)

// SearchResult carries the annotated offers together with the raw response
// kept in the session for later selection by index.
type SearchResult struct {
	Query  entity.SearchQuery
	Raw    map[string]interface{}
	Offers []map[string]interface{}
}

// Search runs a flight-offer search, annotates and filters the results, and
// records the search. Local bookkeeping failures (search log, archive,
// session save) are logged and swallowed; the user still gets results.
// Returns ErrNoOffers when filtering leaves nothing bookable.
func (u *FlightUsecase) Search(ctx context.Context, sess *entity.Session, q entity.SearchQuery) (*SearchResult, error) {
	if q.Origin == "" || q.Destination == "" || q.DepartureDate == "" {
		return nil, ErrIncompleteQuery
	}
	if q.Adults <= 0 {
		q.Adults = 1
	}

	raw, err := u.client.SearchOffers(ctx, q, sess)
	if err != nil {
		// A retry may have refreshed the session token before failing.
		u.saveSession(ctx, sess)
		return nil, err
	}

	if u.metrics != nil {
		u.metrics.SearchesTotal.Inc()
	}

	offers := u.normalizer.Annotate(jsonutil.GetSlice(raw, "data"))
	u.normalizer.SortByDeparture(offers)

	// The session keeps the annotated list; selection-by-index refers to
	// exactly what the user was shown.
	annotated := make([]interface{}, len(offers))
	for i := range offers {
		annotated[i] = offers[i]
	}
	raw["data"] = annotated

	u.recordSearch(ctx, sess, q)
	u.archive(ctx, sessionID(sess), entity.DocumentKindSearch, "/v2/shopping/flight-offers", raw)

	if sess != nil {
		sess.Results = raw
		sess.SelectionID = 0
	}
	u.saveSession(ctx, sess)

	result := &SearchResult{Query: q, Raw: raw, Offers: offers}
	if len(offers) == 0 {
		return result, ErrNoOffers
	}
	return result, nil
}

// recordSearch persists the search log and points the session at it.
func (u *FlightUsecase) recordSearch(ctx context.Context, sess *entity.Session, q entity.SearchQuery) {
	departure, err := time.Parse("2006-01-02", q.DepartureDate)
	if err != nil {
		u.logger.Warn("Unparseable departure date, search not logged", "date", q.DepartureDate)
		return
	}

	log := &entity.SearchLog{
		Origin:        q.Origin,
		Destination:   q.Destination,
		DepartureDate: departure,
		IsRoundTrip:   q.IsRoundTrip(),
	}
	if q.ReturnDate != "" {
		if ret, err := time.Parse("2006-01-02", q.ReturnDate); err == nil {
			log.ReturnDate = &ret
		}
	}

	if err := u.searchRepo.Create(ctx, log); err != nil {
		u.logger.Warn("Failed to persist search log", "error", err)
		u.countError("search_log")
		return
	}
	if sess != nil {
		sess.SearchLogID = log.ID
	}
}

func sessionID(sess *entity.Session) string {
	if sess == nil {
		return ""
	}
	return sess.ID
}
