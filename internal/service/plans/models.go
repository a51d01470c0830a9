package plans

import "github.com/evilazio/barbershop-booking/internal/domain"

// Eligibility результат проверки покрытия услуги планом
type Eligibility string

const (
	CoveredByPlus   Eligibility = "covered_by_plus"
	CoveredByCommon Eligibility = "covered_by_common"
	Exhausted       Eligibility = "exhausted"
	NotCovered      Eligibility = "not_covered"
)

// Refusal reasons returned to the client
const (
	ReasonCommonPlanExhausted = "COMMON_PLAN_EXHAUSTED"
	ReasonPlanNotCovered      = "PLAN_NOT_COVERED"
)

func (e Eligibility) IsCovered() bool {
	return e == CoveredByPlus || e == CoveredByCommon
}

// RefusalReason код причины отказа, пустой для покрытых услуг
func (e Eligibility) RefusalReason() string {
	switch e {
	case Exhausted:
		return ReasonCommonPlanExhausted
	case NotCovered:
		return ReasonPlanNotCovered
	default:
		return ""
	}
}

// Settings параметры планов из конфигурации
type Settings struct {
	CommonMonthlyFreeCuts int
	CommonMonthlyPrice    float64
	PlusMonthlyPrice      float64
}

// CatalogEntry описание плана для витрины
type CatalogEntry struct {
	Type            domain.PlanType
	Name            string
	MonthlyPrice    float64
	MonthlyFreeCuts *int // nil - без лимита
	Coverage        string
}
