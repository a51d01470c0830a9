package get_services

import (
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
)

// ServicesResponse каталог услуг в порядке показа
type ServicesResponse struct {
	Services []Service `json:"services"`
}

type Service struct {
	Key             string  `json:"key"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	CoveredByCommon bool    `json:"coveredByCommonPlan"`
}

// Handle GET /api/services
func Handle(w http.ResponseWriter, _ *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, FromCatalog(calendar.Services()))
}

func FromCatalog(services []calendar.Service) *ServicesResponse {
	resp := &ServicesResponse{Services: make([]Service, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, Service{
			Key:             s.Key,
			Name:            s.DisplayName,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price,
			CoveredByCommon: s.IsCut,
		})
	}
	return resp
}
