package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"flightbook-service/internal/domain/entity"
	"flightbook-service/internal/domain/repository"
	"flightbook-service/internal/interface/amadeus"
	"flightbook-service/internal/usecase"
	"flightbook-service/pkg/logger"
)

const sessionCookie = "fb_session"

// Handler is the thin HTTP surface over the flight usecases. Identity and
// rendering live outside this service; the user id arrives as a header and
// everything returns JSON.
type Handler struct {
	uc       *usecase.FlightUsecase
	sessions repository.SessionRepository
	logger   logger.Logger
}

// NewHandler creates a new REST handler
func NewHandler(uc *usecase.FlightUsecase, sessions repository.SessionRepository, log logger.Logger) *Handler {
	return &Handler{
		uc:       uc,
		sessions: sessions,
		logger:   log,
	}
}

// Register mounts all routes on the echo instance
func (h *Handler) Register(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/flights/search", h.Search)
	api.POST("/flights/price", h.Price)
	api.GET("/booking", h.Selection)
	api.POST("/booking/confirm", h.ConfirmBooking)
	api.GET("/bookings", h.ListBookings)
	api.POST("/payments/confirm", h.ConfirmPayment)
	api.GET("/locations", h.Locations)
}

// ErrorResponse is the JSON error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func fail(c echo.Context, status int, kind, message string) error {
	return c.JSON(status, ErrorResponse{Error: kind, Message: message, Code: status})
}

// session loads the caller's session, creating one when absent.
func (h *Handler) session(c echo.Context) *entity.Session {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(sessionCookie); err == nil && cookie.Value != "" {
		sess, err := h.sessions.Get(ctx, cookie.Value)
		if err != nil {
			h.logger.Warn("Failed to load session", "id", cookie.Value, "error", err)
		}
		if sess != nil {
			return sess
		}
		return &entity.Session{ID: cookie.Value}
	}

	sess := &entity.Session{ID: uuid.NewString()}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return sess
}

func userID(c echo.Context) string {
	if id := c.Request().Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "guest"
}

// providerFail maps client-layer errors to a JSON error response.
func providerFail(c echo.Context, err error) error {
	msg := amadeus.FriendlyMessage(err)

	if errors.Is(err, amadeus.ErrCredentialUnavailable) {
		return fail(c, http.StatusServiceUnavailable, "credential_unavailable", msg)
	}
	var ne *amadeus.NetworkError
	if errors.As(err, &ne) {
		return fail(c, http.StatusBadGateway, "network_error", msg)
	}
	return fail(c, http.StatusBadGateway, "provider_error", msg)
}

// Search handles GET /api/flights/search
func (h *Handler) Search(c echo.Context) error {
	sess := h.session(c)

	adults, err := strconv.Atoi(c.QueryParam("adults"))
	if err != nil {
		adults = 1
	}
	query := entity.SearchQuery{
		Origin:        c.QueryParam("origin"),
		Destination:   c.QueryParam("destination"),
		DepartureDate: c.QueryParam("departure_date"),
		ReturnDate:    c.QueryParam("return_date"),
		Adults:        adults,
	}

	result, err := h.uc.Search(c.Request().Context(), sess, query)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]interface{}{
			"offers": result.Offers,
			"count":  len(result.Offers),
		})
	case errors.Is(err, usecase.ErrIncompleteQuery):
		return fail(c, http.StatusBadRequest, "validation_error", "Asal, tujuan, dan tanggal berangkat wajib diisi")
	case errors.Is(err, usecase.ErrNoOffers):
		return c.JSON(http.StatusOK, map[string]interface{}{
			"offers":  []interface{}{},
			"count":   0,
			"message": "Tidak ada penerbangan yang tersedia untuk pencarian ini",
		})
	default:
		return providerFail(c, err)
	}
}

// priceRequest is the POST body of /api/flights/price
type priceRequest struct {
	Offer map[string]interface{} `json:"offer"`
}

// Price handles POST /api/flights/price
func (h *Handler) Price(c echo.Context) error {
	sess := h.session(c)

	var req priceRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "Format penawaran tidak valid")
	}
	if req.Offer == nil {
		return fail(c, http.StatusBadRequest, "validation_error", "Tidak ada data penawaran")
	}

	priced, err := h.uc.Price(c.Request().Context(), sess, req.Offer)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingOffer) {
			return fail(c, http.StatusBadRequest, "validation_error", "Tidak ada data penawaran")
		}
		return providerFail(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"priced": priced})
}

// Selection handles GET /api/booking, resolving an offer by index into the
// session's last search results.
func (h *Handler) Selection(c echo.Context) error {
	sess := h.session(c)

	result, err := h.uc.GetSelection(c.Request().Context(), sess, c.QueryParam("idx"))
	switch {
	case err == nil:
		response := map[string]interface{}{"offer": result.Offer}
		if result.Selection != nil {
			response["selection_id"] = result.Selection.ID
		}
		return c.JSON(http.StatusOK, response)
	case errors.Is(err, usecase.ErrMissingIndex):
		return fail(c, http.StatusBadRequest, "missing_param", "Parameter idx tidak ada")
	case errors.Is(err, usecase.ErrInvalidIndex):
		return fail(c, http.StatusBadRequest, "invalid_param", "Parameter idx tidak valid")
	case errors.Is(err, usecase.ErrNoActiveSearch):
		return fail(c, http.StatusBadRequest, "no_active_search", "Tidak ada hasil pencarian aktif")
	default:
		return fail(c, http.StatusNotFound, "not_found", "Penawaran tidak ditemukan")
	}
}

// confirmBookingRequest is the POST body of /api/booking/confirm
type confirmBookingRequest struct {
	Idx            string `json:"idx"`
	FullName       string `json:"name"`
	PassportNumber string `json:"passport"`
	Nationality    string `json:"nationality"`
	BirthDate      string `json:"birth_date"`
}

// ConfirmBooking handles POST /api/booking/confirm
func (h *Handler) ConfirmBooking(c echo.Context) error {
	sess := h.session(c)

	var req confirmBookingRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "Format permintaan tidak valid")
	}

	outcome, err := h.uc.ConfirmBooking(c.Request().Context(), sess, userID(c), usecase.BookingInput{
		Idx:            req.Idx,
		FullName:       req.FullName,
		PassportNumber: req.PassportNumber,
		Nationality:    req.Nationality,
		BirthDate:      req.BirthDate,
	})
	if err != nil {
		return providerFail(c, err)
	}

	response := map[string]interface{}{}
	if outcome.Booking != nil {
		response["booking_reference"] = outcome.Booking.Reference
	}
	if outcome.Priced != nil {
		response["priced"] = outcome.Priced
	}
	if outcome.Order != nil {
		response["order"] = outcome.Order
	}
	if outcome.FriendlyError != "" {
		response["friendly_error"] = outcome.FriendlyError
	}
	return c.JSON(http.StatusOK, response)
}

// ListBookings handles GET /api/bookings
func (h *Handler) ListBookings(c echo.Context) error {
	summaries, err := h.uc.ListBookings(c.Request().Context(), userID(c))
	if err != nil {
		h.logger.Error("Failed to list bookings", "error", err)
		return fail(c, http.StatusInternalServerError, "internal_error", "Gagal memuat daftar pemesanan")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"bookings": summaries})
}

// confirmPaymentRequest is the POST body of /api/payments/confirm
type confirmPaymentRequest struct {
	Reference string  `json:"booking_reference"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
}

// ConfirmPayment handles POST /api/payments/confirm
func (h *Handler) ConfirmPayment(c echo.Context) error {
	var req confirmPaymentRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid_request", "Format permintaan tidak valid")
	}

	err := h.uc.ConfirmPayment(c.Request().Context(), userID(c), req.Reference, req.Status, req.Amount)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, map[string]interface{}{
			"booking_reference": req.Reference,
			"status":            "confirmed",
		})
	case errors.Is(err, usecase.ErrBookingNotFound):
		return fail(c, http.StatusNotFound, "not_found", "Pemesanan tidak ditemukan")
	case errors.Is(err, usecase.ErrNoPayment):
		return fail(c, http.StatusConflict, "no_payment", "Pemesanan tidak memiliki data pembayaran")
	case errors.Is(err, usecase.ErrPaymentAlreadyFailed):
		return fail(c, http.StatusConflict, "already_failed", "Pembayaran sudah gagal dan tidak dapat diulang")
	case errors.Is(err, usecase.ErrStatusMismatch):
		return fail(c, http.StatusBadRequest, "status_mismatch", "Status pembayaran tidak valid")
	case errors.Is(err, usecase.ErrAmountMismatch):
		return fail(c, http.StatusBadRequest, "amount_mismatch", "Jumlah pembayaran tidak sesuai")
	default:
		h.logger.Error("Payment confirmation failed", "error", err)
		return fail(c, http.StatusInternalServerError, "internal_error", "Gagal mengonfirmasi pembayaran")
	}
}

// Locations handles GET /api/locations
func (h *Handler) Locations(c echo.Context) error {
	sess := h.session(c)

	result, err := h.uc.Locations(c.Request().Context(), sess, c.QueryParam("keyword"))
	if err != nil {
		if errors.Is(err, usecase.ErrMissingKeyword) {
			return fail(c, http.StatusBadRequest, "validation_error", "Parameter keyword wajib diisi")
		}
		return providerFail(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
