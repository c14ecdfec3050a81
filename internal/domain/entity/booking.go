package entity

import (
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Booking is a persisted reservation. Status moves pending -> confirmed on a
// verified payment; cancelled is a modeled end state.
type Booking struct {
	ID          uint
	UserID      string
	SelectionID uint
	Reference   string
	Status      BookingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Passenger belongs to exactly one booking.
type Passenger struct {
	ID             uint
	BookingID      uint
	FullName       string
	PassportNumber string
	Nationality    string
	BirthDate      string
}

// Payment is the one-to-one payment record of a booking. paid and failed are
// terminal states.
type Payment struct {
	ID        uint
	BookingID uint
	Amount    float64
	Currency  string
	Status    PaymentStatus
	CreatedAt time.Time
}

// BookingSummary is the list view of a booking with its payment state.
type BookingSummary struct {
	Reference     string    `json:"booking_reference"`
	Status        string    `json:"status"`
	AirlineCode   string    `json:"airline_code"`
	FlightNumber  string    `json:"flight_number"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departure_time"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}
