package get_me

import (
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/service/users/models"
)

const msgInvalidSession = "Sessao invalida."

// Calendar ключ текущего месяца для отображения счетчика плана
type Calendar interface {
	CurrentMonthKey() string
}

type Response struct {
	User *models.UserResponse `json:"user"`
}

type Handler struct {
	calendar Calendar
}

func NewHandler(calendar Calendar) *Handler {
	return &Handler{calendar: calendar}
}

// Handle GET /api/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidSession)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		User: models.FromDomainUser(user, h.calendar.CurrentMonthKey()),
	})
}
