package create_plan_purchase

import (
	"fmt"
	"strings"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
)

// validateRequest возвращает тип плана и ключ предпочтительной стрижки
func validateRequest(req *Request) (domain.PlanType, string, error) {
	if req.UserID <= 0 {
		return "", "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	planType, ok := domain.ParsePurchasablePlan(req.PlanType)
	if !ok {
		return "", "", ErrInvalidPlan
	}

	if planType != domain.PlanCommon || strings.TrimSpace(req.PreferredCut) == "" {
		return planType, "", nil
	}

	key := calendar.NormalizeServiceKey(req.PreferredCut)
	if key == "" || !calendar.IsCutService(key) {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidPreferredCut, req.PreferredCut)
	}

	return planType, key, nil
}
