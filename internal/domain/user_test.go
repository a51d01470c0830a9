package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanUsage_Effective(t *testing.T) {
	usage := PlanUsage{MonthKey: "2026-09", CommonCutsUsed: 2}

	assert.Equal(t, PlanUsage{MonthKey: "2026-10", CommonCutsUsed: 0}, usage.Effective("2026-10"))
	assert.Equal(t, usage, usage.Effective("2026-09"))
}

func TestPlan_Effective_DefaultsType(t *testing.T) {
	p := Plan{}.Effective("2026-10")

	assert.Equal(t, PlanNone, p.Type)
	assert.Equal(t, "2026-10", p.Usage.MonthKey)
}

func TestParsePurchasablePlan(t *testing.T) {
	pt, ok := ParsePurchasablePlan(" PLUS ")
	assert.True(t, ok)
	assert.Equal(t, PlanPlus, pt)

	_, ok = ParsePurchasablePlan("none")
	assert.False(t, ok)
}
