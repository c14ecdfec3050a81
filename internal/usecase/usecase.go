package usecase

import (
	"context"
	"errors"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/domain/repository"
	"flightbook-service/pkg/logger"
	"flightbook-service/pkg/metrics"
)

// Validation and selection errors.
var (
	ErrIncompleteQuery = errors.New("origin, destination and departure date are required")
	ErrMissingOffer    = errors.New("no offer supplied")
	ErrMissingKeyword  = errors.New("keyword is required")
	ErrMissingIndex    = errors.New("idx parameter is missing")
	ErrInvalidIndex    = errors.New("idx parameter is not a number")
	ErrNoActiveSearch  = errors.New("no search results in session")
	ErrOfferNotFound   = errors.New("offer not found in last search results")
	ErrNoOffers        = errors.New("no bookable offers found")
)

// ErrPersistenceSkipped means local record creation was skipped because
// prerequisite data was absent. Logged by callers, never fatal to the
// user-facing flow.
var ErrPersistenceSkipped = errors.New("local persistence skipped: prerequisite data missing")

// Payment confirmation rejections. Always returned as results, never bubbled
// to a generic handler.
var (
	ErrBookingNotFound      = errors.New("booking not found")
	ErrNoPayment            = errors.New("booking has no payment")
	ErrPaymentAlreadyFailed = errors.New("payment already failed")
	ErrStatusMismatch       = errors.New("reported status is not paid")
	ErrAmountMismatch       = errors.New("amount does not match the recorded payment")
)

// ProviderClient is the slice of the Amadeus client the usecases consume.
type ProviderClient interface {
	SearchOffers(ctx context.Context, q entity.SearchQuery, sess *entity.Session) (map[string]interface{}, error)
	PriceOffer(ctx context.Context, offer map[string]interface{}, sess *entity.Session) (map[string]interface{}, error)
	CreateOrder(ctx context.Context, order map[string]interface{}, sess *entity.Session) (map[string]interface{}, error)
	SearchLocations(ctx context.Context, keyword string, sess *entity.Session) (map[string]interface{}, error)
}

// FlightUsecase coordinates the search, selection, booking and payment
// operations against the provider client and local persistence.
type FlightUsecase struct {
	client        ProviderClient
	searchRepo    repository.SearchLogRepository
	selectionRepo repository.SelectionRepository
	bookingRepo   repository.BookingRepository
	sessionRepo   repository.SessionRepository
	archiveRepo   repository.DocumentArchiveRepository
	normalizer    *OfferNormalizer
	metrics       *metrics.Metrics
	logger        logger.Logger
}

// NewFlightUsecase creates a new flight usecase
func NewFlightUsecase(
	client ProviderClient,
	searchRepo repository.SearchLogRepository,
	selectionRepo repository.SelectionRepository,
	bookingRepo repository.BookingRepository,
	sessionRepo repository.SessionRepository,
	archiveRepo repository.DocumentArchiveRepository,
	normalizer *OfferNormalizer,
	m *metrics.Metrics,
	log logger.Logger,
) *FlightUsecase {
	return &FlightUsecase{
		client:        client,
		searchRepo:    searchRepo,
		selectionRepo: selectionRepo,
		bookingRepo:   bookingRepo,
		sessionRepo:   sessionRepo,
		archiveRepo:   archiveRepo,
		normalizer:    normalizer,
		metrics:       m,
		logger:        log,
	}
}

// archive stores a raw provider document. Failures are logged and swallowed;
// the archive is a non-critical audit trail.
func (u *FlightUsecase) archive(ctx context.Context, sessionID, kind, endpoint string, payload map[string]interface{}) {
	if u.archiveRepo == nil {
		return
	}
	doc := &entity.ArchivedDocument{
		SessionID: sessionID,
		Kind:      kind,
		Endpoint:  endpoint,
		Payload:   payload,
	}
	if err := u.archiveRepo.Archive(ctx, doc); err != nil {
		u.logger.Warn("Failed to archive provider document", "kind", kind, "error", err)
		u.countError("archive")
	}
}

// saveSession persists session state. Failures are logged; the flow
// continues with in-memory state.
func (u *FlightUsecase) saveSession(ctx context.Context, sess *entity.Session) {
	if sess == nil || u.sessionRepo == nil {
		return
	}
	if err := u.sessionRepo.Save(ctx, sess); err != nil {
		u.logger.Error("Failed to save session", "session", sess.ID, "error", err)
		u.countError("session_save")
	}
}

func (u *FlightUsecase) countError(operation string) {
	if u.metrics != nil {
		u.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
