package entity

import (
	"time"
)

// SearchQuery is the immutable input for a flight-offer search.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
}

// IsRoundTrip reports whether a return leg was requested.
func (q SearchQuery) IsRoundTrip() bool {
	return q.ReturnDate != ""
}

// SearchLog records one successful search. Immutable after creation.
type SearchLog struct {
	ID            uint
	Origin        string
	Destination   string
	DepartureDate time.Time
	ReturnDate    *time.Time
	IsRoundTrip   bool
	CreatedAt     time.Time
}
