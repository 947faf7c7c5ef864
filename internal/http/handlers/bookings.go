package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/toshihome/homestay-bookings/internal/domain"
	"github.com/toshihome/homestay-bookings/internal/http/response"
	"github.com/toshihome/homestay-bookings/internal/mailer"
	"github.com/toshihome/homestay-bookings/internal/storage"
	"github.com/toshihome/homestay-bookings/pkg/events"
	"github.com/toshihome/homestay-bookings/pkg/logger"
)

type BookingsHandler struct {
	Store storage.Store
	Bus   events.Publisher
	Mail  mailer.Service
}

func NewBookingsHandler(store storage.Store, bus events.Publisher, mail mailer.Service) *BookingsHandler {
	return &BookingsHandler{Store: store, Bus: bus, Mail: mail}
}

func (h *BookingsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.create)
	return r
}

// create runs the linear booking pipeline: schema validation, date
// parsing, date ordering, then persistence. A failure at any stage
// short-circuits; nothing is written until all checks pass.
func (h *BookingsHandler) create(w http.ResponseWriter, r *http.Request) {
	var booking domain.Booking
	if fields := domain.DecodeAndValidate(r.Body, &booking); fields != nil {
		response.ValidationFailed(w, fields)
		return
	}

	if _, _, err := booking.Dates(); err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedDate):
			response.BadRequest(w, "Invalid date format. Use YYYY-MM-DD", response.CodeMalformedDate)
		case errors.Is(err, domain.ErrInvalidDateRange):
			response.BadRequest(w, "check_out must be after check_in", response.CodeInvalidDateRange)
		default:
			response.InternalError(w, "failed to process booking dates")
		}
		return
	}

	doc, err := storage.ToDocument(&booking)
	if err != nil {
		logger.ErrorContext(r.Context(), "Booking encode failed", "error", err)
		response.InternalError(w, "failed to store booking")
		return
	}
	doc["created_at"] = time.Now().UTC()

	id, err := h.Store.Insert(r.Context(), storage.CollectionBooking, doc)
	if err != nil {
		if errors.Is(err, storage.ErrUnavailable) {
			response.StoreUnavailable(w)
			return
		}
		logger.ErrorContext(r.Context(), "Booking insert failed", "error", err)
		response.InternalError(w, "failed to store booking")
		return
	}

	if err := h.Bus.Publish(r.Context(), events.BookingCreated, events.BookingCreatedEvent{
		BookingID:  id,
		HomestayID: booking.HomestayID,
		GuestEmail: booking.GuestEmail,
		GuestName:  booking.GuestName,
		Guests:     *booking.Guests,
		CheckIn:    booking.CheckIn,
		CheckOut:   booking.CheckOut,
		CreatedAt:  time.Now().UTC(),
	}); err != nil {
		logger.WarnContext(r.Context(), "Failed to publish booking.created", "error", err)
	}

	if err := h.Mail.SendBookingConfirmation(booking.GuestEmail, booking.GuestName, id,
		booking.CheckIn, booking.CheckOut, *booking.Guests); err != nil {
		logger.WarnContext(r.Context(), "Failed to send booking confirmation", "error", err)
	}

	response.WriteJSON(w, http.StatusCreated, map[string]string{"id": id, "status": "created"})
}
