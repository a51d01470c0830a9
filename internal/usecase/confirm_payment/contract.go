package confirm_payment

import (
	"context"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

// BookingRepository поиск и подтверждение ожидающих оплаты бронирований.
// Все Find* блокируют строку внутри транзакции и учитывают только незакрытое окно оплаты
type BookingRepository interface {
	FindPendingByID(ctx context.Context, id int64, now time.Time) (*domain.Booking, error)
	FindPendingByProviderPaymentID(ctx context.Context, providerPaymentID string, now time.Time) (*domain.Booking, error)
	FindPendingByExternalReference(ctx context.Context, ref string, now time.Time) (*domain.Booking, error)
	FindPendingByPaymentCode(ctx context.Context, code string, now time.Time) (*domain.Booking, error)
	FindConfirmedByKeys(ctx context.Context, keys domain.PaymentKeys) (*domain.Booking, error)
	Confirm(ctx context.Context, id int64, paidAt time.Time, now time.Time) error
}

// PurchaseRepository поиск и подтверждение ожидающих оплаты покупок планов
type PurchaseRepository interface {
	FindPendingByID(ctx context.Context, id int64, now time.Time) (*domain.PlanPurchase, error)
	FindPendingByProviderPaymentID(ctx context.Context, providerPaymentID string, now time.Time) (*domain.PlanPurchase, error)
	FindPendingByExternalReference(ctx context.Context, ref string, now time.Time) (*domain.PlanPurchase, error)
	FindPendingByPaymentCode(ctx context.Context, code string, now time.Time) (*domain.PlanPurchase, error)
	FindConfirmedByKeys(ctx context.Context, keys domain.PaymentKeys) (*domain.PlanPurchase, error)
	Confirm(ctx context.Context, id int64, paidAt time.Time, now time.Time) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePlan(ctx context.Context, id int64, plan domain.Plan) error
}

// PlanActivator активация плана после оплаты
type PlanActivator interface {
	Activate(planType domain.PlanType, preferredCut, monthKey string, now time.Time) domain.Plan
}

// Calendar календарь записи
type Calendar interface {
	Now() time.Time
	MonthKey(t time.Time) string
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счетчик обработанных уведомлений
type MetricsRecorder interface {
	PaymentReconciled(target, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
