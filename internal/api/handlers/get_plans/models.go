package get_plans

import (
	"github.com/evilazio/barbershop-booking/internal/service/plans"
	"github.com/evilazio/barbershop-booking/internal/service/users/models"
)

// PlansResponse HTTP response model
type PlansResponse struct {
	Plans    map[string]PlanEntry `json:"plans"`
	UserPlan models.PlanResponse  `json:"userPlan"`
}

// PlanEntry описание плана в каталоге. MonthlyFreeCuts null для безлимитного плана
type PlanEntry struct {
	Name            string  `json:"name"`
	MonthlyPrice    float64 `json:"monthlyPrice"`
	MonthlyFreeCuts *int    `json:"monthlyFreeCuts"`
	Coverage        string  `json:"coverage"`
}

func FromCatalog(catalog []plans.CatalogEntry, userPlan models.PlanResponse) *PlansResponse {
	entries := make(map[string]PlanEntry, len(catalog))
	for _, entry := range catalog {
		entries[string(entry.Type)] = PlanEntry{
			Name:            entry.Name,
			MonthlyPrice:    entry.MonthlyPrice,
			MonthlyFreeCuts: entry.MonthlyFreeCuts,
			Coverage:        entry.Coverage,
		}
	}

	return &PlansResponse{
		Plans:    entries,
		UserPlan: userPlan,
	}
}
