package models

import "github.com/evilazio/barbershop-booking/internal/domain"

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Username    string
	DisplayName string
	Phone       string
	Password    string
}

// UpdateProfileRequest запрос на изменение профиля.
// Пустой Password оставляет пароль без изменений
type UpdateProfileRequest struct {
	DisplayName string
	Phone       string
	Password    string
}

// UserResponse публичное представление пользователя
type UserResponse struct {
	ID       int64        `json:"id"`
	Name     string       `json:"name"`
	Username string       `json:"username"`
	Phone    string       `json:"phone"`
	Role     string       `json:"role"`
	Plan     PlanResponse `json:"plan"`
}

type PlanResponse struct {
	Type         string        `json:"type"`
	PreferredCut string        `json:"preferredCut"`
	Usage        UsageResponse `json:"usage"`
}

type UsageResponse struct {
	MonthKey       string `json:"monthKey"`
	CommonCutsUsed int    `json:"commonCutsUsed"`
}

// FromDomainUser строит ответ с планом, приведенным к текущему месяцу
func FromDomainUser(user *domain.User, monthKey string) *UserResponse {
	return &UserResponse{
		ID:       user.ID,
		Name:     user.DisplayName,
		Username: user.Username,
		Phone:    user.Phone,
		Role:     string(user.Role),
		Plan:     FromDomainPlan(user.Plan, monthKey),
	}
}

func FromDomainPlan(plan domain.Plan, monthKey string) PlanResponse {
	effective := plan.Effective(monthKey)
	return PlanResponse{
		Type:         string(effective.Type),
		PreferredCut: effective.PreferredCut,
		Usage: UsageResponse{
			MonthKey:       effective.Usage.MonthKey,
			CommonCutsUsed: effective.Usage.CommonCutsUsed,
		},
	}
}
