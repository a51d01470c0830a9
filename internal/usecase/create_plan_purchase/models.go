package create_plan_purchase

import (
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

// Settings параметры покупки из конфигурации
type Settings struct {
	PendingWindow time.Duration
}

// Request модель запроса на покупку плана
type Request struct {
	UserID       int64
	Role         domain.Role
	PlanType     string
	PreferredCut string // опционально, только для common
}

// Response созданная покупка с данными для оплаты
type Response struct {
	PurchaseID   int64
	PlanType     domain.PlanType
	PreferredCut string
	Amount       float64
	Status       domain.PurchaseStatus
	Payment      domain.Payment
}
