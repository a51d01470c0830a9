package plans

import (
	"fmt"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
)

// Ledger правила покрытия услуг планами и учет бесплатных стрижек.
// Все методы чистые: изменения плана сохраняет вызывающий код
// в той же транзакции, где заблокирована строка пользователя.
type Ledger struct {
	settings Settings
}

func NewLedger(settings Settings) *Ledger {
	return &Ledger{settings: settings}
}

func (l *Ledger) MonthlyFreeCuts() int {
	return l.settings.CommonMonthlyFreeCuts
}

// EvaluateEligibility решает, покрывает ли план услугу в месяце monthKey
func (l *Ledger) EvaluateEligibility(plan domain.Plan, serviceKey, monthKey string) Eligibility {
	plan = plan.Effective(monthKey)

	switch plan.Type {
	case domain.PlanPlus:
		return CoveredByPlus
	case domain.PlanCommon:
		if !calendar.IsCutService(serviceKey) {
			return NotCovered
		}
		if plan.Usage.CommonCutsUsed >= l.settings.CommonMonthlyFreeCuts {
			return Exhausted
		}
		if plan.PreferredCut != "" && plan.PreferredCut != serviceKey {
			return NotCovered
		}
		return CoveredByCommon
	default:
		return NotCovered
	}
}

// ConsumeCommonCut списывает одну бесплатную стрижку текущего месяца
func (l *Ledger) ConsumeCommonCut(plan domain.Plan, monthKey string, now time.Time) domain.Plan {
	plan = plan.Effective(monthKey)
	plan.Usage.CommonCutsUsed++
	plan.UpdatedAt = now
	return plan
}

// Activate план после подтвержденной оплаты покупки, счетчик сбрасывается
func (l *Ledger) Activate(planType domain.PlanType, preferredCut, monthKey string, now time.Time) domain.Plan {
	if planType != domain.PlanCommon {
		preferredCut = ""
	}
	return domain.Plan{
		Type:         planType,
		PreferredCut: preferredCut,
		Usage:        domain.PlanUsage{MonthKey: monthKey},
		UpdatedAt:    now,
	}
}

// Price месячная стоимость плана
func (l *Ledger) Price(planType domain.PlanType) (float64, error) {
	switch planType {
	case domain.PlanCommon:
		return l.settings.CommonMonthlyPrice, nil
	case domain.PlanPlus:
		return l.settings.PlusMonthlyPrice, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPlan, planType)
	}
}

// Catalog витрина планов
func (l *Ledger) Catalog() []CatalogEntry {
	freeCuts := l.settings.CommonMonthlyFreeCuts
	return []CatalogEntry{
		{
			Type:            domain.PlanCommon,
			Name:            "Plano Comum",
			MonthlyPrice:    l.settings.CommonMonthlyPrice,
			MonthlyFreeCuts: &freeCuts,
			Coverage:        "Cortes de cabelo",
		},
		{
			Type:         domain.PlanPlus,
			Name:         "Plano Plus",
			MonthlyPrice: l.settings.PlusMonthlyPrice,
			Coverage:     "Cabelo, barba, sobrancelha e demais servicos",
		},
	}
}
