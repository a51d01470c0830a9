package get_day_schedule

import (
	"context"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/expiration"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetActiveByDate возвращает записи, занимающие слоты дня
	GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Booking, error)
}

// ExpirationSweeper переводит просроченные неоплаченные записи в expired
type ExpirationSweeper interface {
	SweepExpired(ctx context.Context) (expiration.Result, error)
}

// Calendar календарь записи
type Calendar interface {
	Now() time.Time
	DateForDay(day string) (time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
