package repository

import (
	"context"

	"flightbook-service/internal/domain/entity"
)

// BookingRepository defines persistence for bookings, passengers and
// payments. Creation and status transitions are atomic: no reader may see a
// booking without its payment, or a paid payment on a pending booking.
type BookingRepository interface {
	// CreateWithDetails persists booking, passenger and payment as one unit.
	CreateWithDetails(ctx context.Context, booking *entity.Booking, passenger *entity.Passenger, payment *entity.Payment) error

	// GetByReference returns the booking owned by userID with the given
	// reference, or nil when none exists.
	GetByReference(ctx context.Context, userID, reference string) (*entity.Booking, error)

	// GetPayment returns the payment of a booking, or nil when absent.
	GetPayment(ctx context.Context, bookingID uint) (*entity.Payment, error)

	// MarkPaid sets the payment to paid and the booking to confirmed in one
	// transaction.
	MarkPaid(ctx context.Context, bookingID uint) error

	// ListByUser returns booking summaries for a user, newest first.
	ListByUser(ctx context.Context, userID string) ([]entity.BookingSummary, error)
}
