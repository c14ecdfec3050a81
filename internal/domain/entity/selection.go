package entity

import (
	"time"
)

// Selection is a durable snapshot of one chosen offer's essential fields,
// taken when the user opens the booking page. A newer selection replaces the
// session's pointer but earlier records are kept.
type Selection struct {
	ID              uint
	SearchLogID     uint
	AirlineCode     string
	FlightNumber    string
	Origin          string
	Destination     string
	DepartureTime   time.Time
	ArrivalTime     time.Time
	Duration        string
	PriceTotal      string
	Currency        string
	ProviderOfferID string
	CreatedAt       time.Time
}
