package create_plan_purchase

import (
	"context"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
)

// PurchaseRepository интерфейс репозитория покупок планов
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.PlanPurchase) (*domain.PlanPurchase, error)
	UpdatePayment(ctx context.Context, id int64, payment domain.Payment, now time.Time) error
}

// PlanPricer цены планов
type PlanPricer interface {
	Price(planType domain.PlanType) (float64, error)
}

// PaymentGateway создание PIX платежа у провайдера
type PaymentGateway interface {
	BuildPixDescriptor(ctx context.Context, amount float64, description, paymentCode, externalReference string) (*payments.Descriptor, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
