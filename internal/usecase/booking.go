package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/interface/amadeus"
	"flightbook-service/pkg/jsonutil"
)

// BookingInput is the passenger data submitted at booking confirmation.
type BookingInput struct {
	Idx            string
	FullName       string
	PassportNumber string
	Nationality    string
	BirthDate      string
}

// BookingOutcome is the composite result of a booking confirmation. Pricing
// and provider-order results are carried even when local persistence was
// skipped; FriendlyError is set when a provider step failed.
type BookingOutcome struct {
	Offer         map[string]interface{}
	Priced        map[string]interface{}
	Order         map[string]interface{}
	Booking       *entity.Booking
	FriendlyError string
}

// ConfirmBooking prices the selected offer, submits the provider order and
// persists the local Booking, Passenger and Payment records. Provider
// failures are folded into the outcome; local persistence failures are
// logged and swallowed so the user still sees the pricing and order results.
func (u *FlightUsecase) ConfirmBooking(ctx context.Context, sess *entity.Session, userID string, in BookingInput) (*BookingOutcome, error) {
	outcome := &BookingOutcome{}

	if sess != nil && sess.Results != nil && in.Idx != "" {
		if idx, err := strconv.Atoi(in.Idx); err == nil {
			outcome.Offer = jsonutil.MapAt(jsonutil.GetSlice(sess.Results, "data"), idx)
		}
	}

	var total, currencyCode string
	if outcome.Offer != nil {
		priced, err := u.client.PriceOffer(ctx, outcome.Offer, sess)
		if err != nil {
			u.logger.Warn("Pricing failed at confirmation, falling back to offer price", "error", err)
			outcome.FriendlyError = amadeus.FriendlyMessage(err)
		} else {
			outcome.Priced = priced
			u.archive(ctx, sessionID(sess), entity.DocumentKindPricing, "/v1/shopping/flight-offers/pricing", priced)
		}

		total, currencyCode = ResolvePrice(outcome.Priced, outcome.Offer)

		if outcome.Priced != nil {
			u.submitOrder(ctx, sess, outcome, in)
		}
	}

	selection := u.resolveSelection(ctx, sess)

	booking, err := u.CreateBooking(ctx, userID, selection, in, total, currencyCode)
	if err != nil {
		u.logger.Warn("Booking not persisted", "user", userID, "error", err)
		u.countError("booking_create")
	} else {
		outcome.Booking = booking
		if u.metrics != nil {
			u.metrics.BookingsCreated.Inc()
		}
	}

	u.saveSession(ctx, sess)
	return outcome, nil
}

// submitOrder creates the provider-side reservation. Failures only mark the
// outcome; the local flow continues.
func (u *FlightUsecase) submitOrder(ctx context.Context, sess *entity.Session, outcome *BookingOutcome, in BookingInput) {
	pricedOffer := jsonutil.MapAt(
		jsonutil.GetSlice(jsonutil.GetMap(outcome.Priced, "data"), "flightOffers"), 0)
	if pricedOffer == nil {
		pricedOffer = outcome.Offer
	}

	order := map[string]interface{}{
		"type":         "flight-order",
		"flightOffers": []interface{}{pricedOffer},
		"travelers":    []interface{}{travelerFromInput(in)},
	}

	result, err := u.client.CreateOrder(ctx, order, sess)
	if err != nil {
		u.logger.Warn("Provider order creation failed", "error", err)
		if outcome.FriendlyError == "" {
			outcome.FriendlyError = amadeus.FriendlyMessage(err)
		}
		return
	}

	outcome.Order = result
	u.archive(ctx, sessionID(sess), entity.DocumentKindOrder, "/v1/booking/flight-orders", result)
}

func travelerFromInput(in BookingInput) map[string]interface{} {
	firstName := in.FullName
	lastName := in.FullName
	if parts := strings.SplitN(in.FullName, "/", 2); len(parts) == 2 {
		lastName, firstName = parts[0], parts[1]
	}

	return map[string]interface{}{
		"id":          "1",
		"dateOfBirth": in.BirthDate,
		"name": map[string]interface{}{
			"firstName": firstName,
			"lastName":  lastName,
		},
		"documents": []interface{}{
			map[string]interface{}{
				"documentType": "PASSPORT",
				"number":       in.PassportNumber,
				"nationality":  in.Nationality,
			},
		},
	}
}

// resolveSelection loads the session's active selection snapshot, nil when
// there is none.
func (u *FlightUsecase) resolveSelection(ctx context.Context, sess *entity.Session) *entity.Selection {
	if sess == nil || sess.SelectionID == 0 {
		return nil
	}
	selection, err := u.selectionRepo.GetByID(ctx, sess.SelectionID)
	if err != nil {
		u.logger.Warn("Failed to load selection", "id", sess.SelectionID, "error", err)
		u.countError("selection_load")
		return nil
	}
	return selection
}

// CreateBooking persists Booking, Passenger and Payment as one unit. When a
// prerequisite is missing it returns ErrPersistenceSkipped and writes
// nothing.
func (u *FlightUsecase) CreateBooking(ctx context.Context, userID string, selection *entity.Selection, in BookingInput, total, currencyCode string) (*entity.Booking, error) {
	if selection == nil || total == "" || currencyCode == "" || in.FullName == "" {
		return nil, ErrPersistenceSkipped
	}
	amount, err := strconv.ParseFloat(total, 64)
	if err != nil {
		return nil, ErrPersistenceSkipped
	}

	booking := &entity.Booking{
		UserID:      userID,
		SelectionID: selection.ID,
		Reference:   newBookingReference(),
		Status:      entity.BookingStatusPending,
	}
	passenger := &entity.Passenger{
		FullName:       in.FullName,
		PassportNumber: in.PassportNumber,
		Nationality:    in.Nationality,
		BirthDate:      in.BirthDate,
	}
	payment := &entity.Payment{
		Amount:   amount,
		Currency: currencyCode,
		Status:   entity.PaymentStatusPending,
	}

	if err := u.bookingRepo.CreateWithDetails(ctx, booking, passenger, payment); err != nil {
		return nil, fmt.Errorf("create booking records: %w", err)
	}

	u.logger.Info("Booking created", "reference", booking.Reference, "user", userID, "amount", amount, "currency", currencyCode)
	return booking, nil
}

// ConfirmPayment verifies and applies a payment confirmation. Re-confirming
// an already paid booking is a no-op; a failed payment is never revived.
func (u *FlightUsecase) ConfirmPayment(ctx context.Context, userID, reference, status string, amount float64) error {
	booking, err := u.bookingRepo.GetByReference(ctx, userID, reference)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return ErrBookingNotFound
	}

	payment, err := u.bookingRepo.GetPayment(ctx, booking.ID)
	if err != nil {
		return fmt.Errorf("load payment: %w", err)
	}
	if payment == nil {
		return ErrNoPayment
	}

	if payment.Status == entity.PaymentStatusFailed {
		return ErrPaymentAlreadyFailed
	}
	if payment.Status == entity.PaymentStatusPaid && booking.Status == entity.BookingStatusConfirmed {
		return nil
	}
	if status != string(entity.PaymentStatusPaid) {
		return ErrStatusMismatch
	}
	if amount != payment.Amount {
		return ErrAmountMismatch
	}

	if err := u.bookingRepo.MarkPaid(ctx, booking.ID); err != nil {
		return fmt.Errorf("mark paid: %w", err)
	}

	if u.metrics != nil {
		u.metrics.PaymentsConfirmed.Inc()
	}
	u.logger.Info("Payment confirmed", "reference", reference, "user", userID)
	return nil
}

// ListBookings returns the user's bookings, newest first.
func (u *FlightUsecase) ListBookings(ctx context.Context, userID string) ([]entity.BookingSummary, error) {
	return u.bookingRepo.ListByUser(ctx, userID)
}

func newBookingReference() string {
	token := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "BK" + token[:12]
}
