package get_plans

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/plans"
)

type fixedMonth string

func (m fixedMonth) CurrentMonthKey() string { return string(m) }

func TestHandle_CatalogWithEffectivePlan(t *testing.T) {
	ledger := plans.NewLedger(plans.Settings{CommonMonthlyFreeCuts: 2, CommonMonthlyPrice: 39.9, PlusMonthlyPrice: 79.9})
	user := &domain.User{
		ID: 7,
		Plan: domain.Plan{
			Type:         domain.PlanCommon,
			PreferredCut: "corte",
			Usage:        domain.PlanUsage{MonthKey: "2026-09", CommonCutsUsed: 2},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req = req.WithContext(middleware.WithUser(req.Context(), user, "token"))
	rec := httptest.NewRecorder()

	NewHandler(ledger, fixedMonth("2026-10")).Handle(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"plans": {
			"common": {"name":"Plano Comum","monthlyPrice":39.9,"monthlyFreeCuts":2,"coverage":"Cortes de cabelo"},
			"plus": {"name":"Plano Plus","monthlyPrice":79.9,"monthlyFreeCuts":null,"coverage":"Cabelo, barba, sobrancelha e demais servicos"}
		},
		"userPlan": {"type":"common","preferredCut":"corte","usage":{"monthKey":"2026-10","commonCutsUsed":0}}
	}`, rec.Body.String())
}
