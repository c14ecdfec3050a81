package entity

import (
	"time"
)

// Document kinds archived from the provider.
const (
	DocumentKindSearch  = "search"
	DocumentKindPricing = "pricing"
	DocumentKindOrder   = "order"
)

// ArchivedDocument is a raw provider response kept for diagnostics. The
// payload is stored untyped; nothing in the service depends on its shape.
type ArchivedDocument struct {
	ID        string                 `bson:"_id,omitempty"`
	SessionID string                 `bson:"sessionId"`
	Kind      string                 `bson:"kind"`
	Endpoint  string                 `bson:"endpoint"`
	Payload   map[string]interface{} `bson:"payload"`
	CreatedAt time.Time              `bson:"createdAt"`
}

// OfferAnalysis is the annotation the normalizer attaches to each offer.
type OfferAnalysis struct {
	BookableSeats      *int `json:"bookable_seats"`
	ValidatingMismatch bool `json:"validating_carrier_mismatch"`
}
