package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/domain/repository"
)

// GormBookingRepository implements the BookingRepository interface
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM booking repository
func NewGormBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &GormBookingRepository{
		db: db,
	}
}

// Bookings GORM model for database mapping
type Bookings struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      string `gorm:"column:user_id;size:100;index"`
	SelectionID uint   `gorm:"column:selection_id"`
	Reference   string `gorm:"column:booking_reference;size:50;uniqueIndex"`
	Status      string `gorm:"column:status;size:20"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides the default table name
func (Bookings) TableName() string {
	return "bookings"
}

// Passengers GORM model for database mapping
type Passengers struct {
	ID             uint   `gorm:"primaryKey"`
	BookingID      uint   `gorm:"column:booking_id;index"`
	FullName       string `gorm:"column:full_name;size:100"`
	PassportNumber string `gorm:"column:passport_number;size:50"`
	Nationality    string `gorm:"column:nationality;size:50"`
	BirthDate      string `gorm:"column:birth_date;size:20"`
}

// TableName overrides the default table name
func (Passengers) TableName() string {
	return "passengers"
}

// Payments GORM model for database mapping
type Payments struct {
	ID        uint    `gorm:"primaryKey"`
	BookingID uint    `gorm:"column:booking_id;uniqueIndex"`
	Amount    float64 `gorm:"column:amount"`
	Currency  string  `gorm:"column:currency;size:10"`
	Status    string  `gorm:"column:status;size:20"`
	CreatedAt time.Time
}

// TableName overrides the default table name
func (Payments) TableName() string {
	return "payments"
}

// CreateWithDetails persists booking, passenger and payment in one
// transaction
func (r *GormBookingRepository) CreateWithDetails(ctx context.Context, booking *entity.Booking, passenger *entity.Passenger, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingRow := Bookings{
			UserID:      booking.UserID,
			SelectionID: booking.SelectionID,
			Reference:   booking.Reference,
			Status:      string(booking.Status),
		}
		if err := tx.Create(&bookingRow).Error; err != nil {
			return err
		}

		passengerRow := Passengers{
			BookingID:      bookingRow.ID,
			FullName:       passenger.FullName,
			PassportNumber: passenger.PassportNumber,
			Nationality:    passenger.Nationality,
			BirthDate:      passenger.BirthDate,
		}
		if err := tx.Create(&passengerRow).Error; err != nil {
			return err
		}

		paymentRow := Payments{
			BookingID: bookingRow.ID,
			Amount:    payment.Amount,
			Currency:  payment.Currency,
			Status:    string(payment.Status),
		}
		if err := tx.Create(&paymentRow).Error; err != nil {
			return err
		}

		booking.ID = bookingRow.ID
		booking.CreatedAt = bookingRow.CreatedAt
		booking.UpdatedAt = bookingRow.UpdatedAt
		passenger.ID = passengerRow.ID
		passenger.BookingID = bookingRow.ID
		payment.ID = paymentRow.ID
		payment.BookingID = bookingRow.ID
		payment.CreatedAt = paymentRow.CreatedAt
		return nil
	})
}

// GetByReference finds a booking by reference for its owning user
func (r *GormBookingRepository) GetByReference(ctx context.Context, userID, reference string) (*entity.Booking, error) {
	var row Bookings
	result := r.db.WithContext(ctx).
		Where("booking_reference = ? AND user_id = ?", reference, userID).
		First(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entity.Booking{
		ID:          row.ID,
		UserID:      row.UserID,
		SelectionID: row.SelectionID,
		Reference:   row.Reference,
		Status:      entity.BookingStatus(row.Status),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// GetPayment finds the payment of a booking
func (r *GormBookingRepository) GetPayment(ctx context.Context, bookingID uint) (*entity.Payment, error) {
	var row Payments
	result := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&row)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return &entity.Payment{
		ID:        row.ID,
		BookingID: row.BookingID,
		Amount:    row.Amount,
		Currency:  row.Currency,
		Status:    entity.PaymentStatus(row.Status),
		CreatedAt: row.CreatedAt,
	}, nil
}

// MarkPaid flips payment to paid and booking to confirmed atomically
func (r *GormBookingRepository) MarkPaid(ctx context.Context, bookingID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Payments{}).
			Where("booking_id = ?", bookingID).
			Update("status", string(entity.PaymentStatusPaid)).Error; err != nil {
			return err
		}
		return tx.Model(&Bookings{}).
			Where("id = ?", bookingID).
			Update("status", string(entity.BookingStatusConfirmed)).Error
	})
}

// ListByUser returns booking summaries for a user, newest first
func (r *GormBookingRepository) ListByUser(ctx context.Context, userID string) ([]entity.BookingSummary, error) {
	var rows []struct {
		Bookings
		PaymentAmount   float64
		PaymentCurrency string
		PaymentStatus   string
		AirlineCode     string
		FlightNumber    string
		Origin          string
		Destination     string
		DepartureTime   time.Time
	}

	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.*,
			payments.amount AS payment_amount,
			payments.currency AS payment_currency,
			payments.status AS payment_status,
			flight_selections.airline_code,
			flight_selections.flight_number,
			flight_selections.origin,
			flight_selections.destination,
			flight_selections.departure_time`).
		Joins("LEFT JOIN payments ON payments.booking_id = bookings.id").
		Joins("LEFT JOIN flight_selections ON flight_selections.id = bookings.selection_id").
		Where("bookings.user_id = ?", userID).
		Order("bookings.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summaries := make([]entity.BookingSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, entity.BookingSummary{
			Reference:     row.Reference,
			Status:        row.Status,
			AirlineCode:   row.AirlineCode,
			FlightNumber:  row.FlightNumber,
			Origin:        row.Origin,
			Destination:   row.Destination,
			DepartureTime: row.DepartureTime,
			Amount:        row.PaymentAmount,
			Currency:      row.PaymentCurrency,
			PaymentStatus: row.PaymentStatus,
			CreatedAt:     row.CreatedAt,
		})
	}
	return summaries, nil
}
