package domain

import (
	"strings"
	"time"
)

// Role роль пользователя
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// PlanType тип подписки
type PlanType string

const (
	PlanNone   PlanType = "none"
	PlanCommon PlanType = "common"
	PlanPlus   PlanType = "plus"
)

// ParsePurchasablePlan возвращает тип плана, который можно купить (common, plus)
func ParsePurchasablePlan(raw string) (PlanType, bool) {
	switch PlanType(strings.ToLower(strings.TrimSpace(raw))) {
	case PlanCommon:
		return PlanCommon, true
	case PlanPlus:
		return PlanPlus, true
	default:
		return "", false
	}
}

// PlanUsage monthly usage counter of the common plan
type PlanUsage struct {
	MonthKey       string // "YYYY-MM"
	CommonCutsUsed int
}

// Effective returns the usage as seen in monthKey.
// A counter stamped with another month is read as zero; this is the only
// place where the monthly reset is decided.
func (u PlanUsage) Effective(monthKey string) PlanUsage {
	if u.MonthKey != monthKey {
		return PlanUsage{MonthKey: monthKey}
	}
	return u
}

// Plan subscription state embedded in the user
type Plan struct {
	Type         PlanType
	PreferredCut string // ключ услуги, имеет смысл только для common
	Usage        PlanUsage
	UpdatedAt    time.Time
}

// Effective returns a copy of the plan with usage normalized to monthKey
func (p Plan) Effective(monthKey string) Plan {
	if p.Type == "" {
		p.Type = PlanNone
	}
	p.Usage = p.Usage.Effective(monthKey)
	return p
}

// User represents an account of the shop
type User struct {
	ID           int64
	Username     string // всегда в нижнем регистре
	DisplayName  string
	Phone        string
	Role         Role
	PasswordHash string
	Plan         Plan
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NameForBooking имя, которое попадает в snapshot бронирования
func (u *User) NameForBooking() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}
