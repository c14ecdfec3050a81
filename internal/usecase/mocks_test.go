package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/pkg/currency"
	"flightbook-service/pkg/logger"
)

type MockProviderClient struct {
	mock.Mock
}

func (m *MockProviderClient) SearchOffers(ctx context.Context, q entity.SearchQuery, sess *entity.Session) (map[string]interface{}, error) {
	args := m.Called(ctx, q, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockProviderClient) PriceOffer(ctx context.Context, offer map[string]interface{}, sess *entity.Session) (map[string]interface{}, error) {
	args := m.Called(ctx, offer, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockProviderClient) CreateOrder(ctx context.Context, order map[string]interface{}, sess *entity.Session) (map[string]interface{}, error) {
	args := m.Called(ctx, order, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

func (m *MockProviderClient) SearchLocations(ctx context.Context, keyword string, sess *entity.Session) (map[string]interface{}, error) {
	args := m.Called(ctx, keyword, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]interface{}), args.Error(1)
}

type MockSearchLogRepository struct {
	mock.Mock
}

func (m *MockSearchLogRepository) Create(ctx context.Context, log *entity.SearchLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

type MockSelectionRepository struct {
	mock.Mock
}

func (m *MockSelectionRepository) Create(ctx context.Context, sel *entity.Selection) error {
	args := m.Called(ctx, sel)
	return args.Error(0)
}

func (m *MockSelectionRepository) GetByID(ctx context.Context, id uint) (*entity.Selection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Selection), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithDetails(ctx context.Context, booking *entity.Booking, passenger *entity.Passenger, payment *entity.Payment) error {
	args := m.Called(ctx, booking, passenger, payment)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, userID, reference string) (*entity.Booking, error) {
	args := m.Called(ctx, userID, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetPayment(ctx context.Context, bookingID uint) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *MockBookingRepository) MarkPaid(ctx context.Context, bookingID uint) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByUser(ctx context.Context, userID string) ([]entity.BookingSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BookingSummary), args.Error(1)
}

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Get(ctx context.Context, id string) (*entity.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *MockSessionRepository) Save(ctx context.Context, sess *entity.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Archive(ctx context.Context, doc *entity.ArchivedDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// fixture wires a usecase over mocks with permissive defaults for the
// bookkeeping paths most tests do not care about.
type fixture struct {
	client     *MockProviderClient
	searches   *MockSearchLogRepository
	selections *MockSelectionRepository
	bookings   *MockBookingRepository
	sessions   *MockSessionRepository
	archive    *MockArchiveRepository
	uc         *FlightUsecase
}

func newFixture() *fixture {
	f := &fixture{
		client:     &MockProviderClient{},
		searches:   &MockSearchLogRepository{},
		selections: &MockSelectionRepository{},
		bookings:   &MockBookingRepository{},
		sessions:   &MockSessionRepository{},
		archive:    &MockArchiveRepository{},
	}

	log := logger.NewNop()
	normalizer := NewOfferNormalizer(currency.NewConverter("IDR", "", log), log)
	f.uc = NewFlightUsecase(f.client, f.searches, f.selections, f.bookings, f.sessions, f.archive, normalizer, nil, log)
	return f
}

func (f *fixture) allowBookkeeping() {
	f.searches.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.sessions.On("Save", mock.Anything, mock.Anything).Return(nil).Maybe()
	f.archive.On("Archive", mock.Anything, mock.Anything).Return(nil).Maybe()
}
