package payment_webhook

import (
	"context"

	confirmPayment "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
)

type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, event confirmPayment.Event) (*confirmPayment.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
