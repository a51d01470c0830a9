package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/service/bookings"
)

const (
	msgInvalidBookingID   = "Agendamento invalido."
	msgInvalidRequestBody = "Requisicao invalida."
	msgInvalidReason      = "Motivo de cancelamento invalido."
	msgNotFound           = "Agendamento nao encontrado."
	msgCannotCancel       = "Somente agendamentos pendentes ou pagos podem ser cancelados."
	msgCancelled          = "Agendamento cancelado com sucesso."
	msgInvalidSession     = "Sessao invalida."
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/admin/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["bookingId"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	admin, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidSession)
		return
	}

	var req CancelBookingRequest
	if err := handlers.DecodeOptionalJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.service.AdminCancel(r.Context(), bookingID, req.ToServiceRequest(admin.Username))
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("POST /admin/bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrNotCancellable):
			h.logger.Warn("POST /admin/bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidReason)

		default:
			h.logger.Error("POST /admin/bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bookings/{id}/cancel - Booking cancelled: booking_id=%d, admin=%s",
		bookingID, admin.Username)
	handlers.RespondJSON(w, http.StatusOK, CancelBookingResponse{Message: msgCancelled, Booking: booking})
}
