package create_booking

import (
	"context"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
	"github.com/evilazio/barbershop-booking/internal/service/plans"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExpireStaleSlot(ctx context.Context, date time.Time, startTime string, now time.Time) (int64, error)
	UpdatePayment(ctx context.Context, id int64, payment domain.Payment, now time.Time) error
}

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	LockByID(ctx context.Context, id int64) (*domain.User, error)
	UpdatePlan(ctx context.Context, id int64, plan domain.Plan) error
}

// PlanLedger правила покрытия услуг планами
type PlanLedger interface {
	EvaluateEligibility(plan domain.Plan, serviceKey, monthKey string) plans.Eligibility
	ConsumeCommonCut(plan domain.Plan, monthKey string, now time.Time) domain.Plan
}

// Calendar календарь записи
type Calendar interface {
	Now() time.Time
	MonthKey(t time.Time) string
	DateForDay(day string) (time.Time, error)
}

// PaymentGateway создание PIX платежа у провайдера
type PaymentGateway interface {
	BuildPixDescriptor(ctx context.Context, amount float64, description, paymentCode, externalReference string) (*payments.Descriptor, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder счетчик созданных бронирований
type MetricsRecorder interface {
	BookingCreated(method string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
