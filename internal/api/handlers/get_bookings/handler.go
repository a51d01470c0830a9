package get_bookings

import (
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/service/bookings"
	"github.com/evilazio/barbershop-booking/internal/service/bookings/models"
)

const (
	msgInvalidSession = "Sessao invalida."
	msgInvalidStatus  = "Status invalido."
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

// Handle GET /api/bookings
// Клиент видит свои записи, администратор все. Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidSession)
		return
	}

	status := r.URL.Query().Get("status")
	var statusPtr *string
	if status != "" {
		statusPtr = &status
	}

	result, err := h.service.List(r.Context(), &models.ListBookingsRequest{
		UserID:  user.ID,
		IsAdmin: user.IsAdmin(),
		Status:  statusPtr,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidStatus)
		default:
			h.logger.Error("GET /bookings - Failed to get bookings: user_id=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved: user_id=%d, count=%d", user.ID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
