package create_plan_payment

import (
	"context"

	createPlanPurchase "github.com/evilazio/barbershop-booking/internal/usecase/create_plan_purchase"
)

type CreatePlanPurchaseUseCase interface {
	Execute(ctx context.Context, req *createPlanPurchase.Request) (*createPlanPurchase.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
