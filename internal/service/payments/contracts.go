package payments

import "context"

// Provider платежный провайдер PIX, выбирается один раз при старте
type Provider interface {
	Name() string
	CreatePixCharge(ctx context.Context, req ChargeRequest) (*Charge, error)
	GetPayment(ctx context.Context, providerPaymentID string) (*ProviderPayment, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
