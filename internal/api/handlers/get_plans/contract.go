package get_plans

import "github.com/evilazio/barbershop-booking/internal/service/plans"

type PlanCatalog interface {
	Catalog() []plans.CatalogEntry
}

type Calendar interface {
	CurrentMonthKey() string
}
