package mercadopago_webhook

import (
	"context"

	"github.com/evilazio/barbershop-booking/internal/service/payments"
	confirmPayment "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
)

type ConfirmPaymentUseCase interface {
	Execute(ctx context.Context, event confirmPayment.Event) (*confirmPayment.Result, error)
}

// PaymentFetcher читает авторитетное состояние платежа у провайдера
type PaymentFetcher interface {
	FetchProviderPayment(ctx context.Context, providerPaymentID string) (*payments.ProviderPayment, error)
	ProviderName() string
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
