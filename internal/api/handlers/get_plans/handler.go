package get_plans

import (
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/service/users/models"
)

const msgInvalidSession = "Sessao invalida."

type Handler struct {
	catalog  PlanCatalog
	calendar Calendar
}

func NewHandler(catalog PlanCatalog, calendar Calendar) *Handler {
	return &Handler{
		catalog:  catalog,
		calendar: calendar,
	}
}

// Handle GET /api/plans
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidSession)
		return
	}

	userPlan := models.FromDomainPlan(user.Plan, h.calendar.CurrentMonthKey())
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(h.catalog.Catalog(), userPlan))
}
