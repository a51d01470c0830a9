package get_day_schedule

import (
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	getDaySchedule "github.com/evilazio/barbershop-booking/internal/usecase/get_day_schedule"
)

const msgInvalidDay = "Dia invalido para este mes."

type Handler struct {
	useCase GetDayScheduleUseCase
	admin   bool
	logger  Logger
}

// NewHandler расписание для клиента: GET /api/schedule/day?day=DD
func NewHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// NewAdminHandler расписание для администратора: GET /api/admin/schedule?day=DD
func NewAdminHandler(useCase GetDayScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		admin:   true,
		logger:  logger,
	}
}

// Handle GET /api/schedule/day, /api/admin/schedule
// Query params: day (required, DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	day := r.URL.Query().Get("day")

	result, err := h.useCase.Execute(r.Context(), &getDaySchedule.Request{Day: day})
	if err != nil {
		switch {
		case errors.Is(err, getDaySchedule.ErrInvalidDay):
			h.logger.Warn("GET %s - Invalid day: %q", r.URL.Path, day)
			handlers.RespondBadRequest(w, msgInvalidDay)
		default:
			h.logger.Error("GET %s - Failed to build schedule: day=%q, error=%v", r.URL.Path, day, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.admin))
}
