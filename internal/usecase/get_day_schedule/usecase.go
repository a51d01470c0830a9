package get_day_schedule

import (
	"context"
	"fmt"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
)

// UseCase use case для получения расписания дня
type UseCase struct {
	bookingRepo BookingRepository
	sweeper     ExpirationSweeper
	calendar    Calendar
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sweeper ExpirationSweeper,
	calendar Calendar,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		sweeper:     sweeper,
		calendar:    calendar,
		logger:      logger,
	}
}

// Execute выполняет use case получения расписания дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация дня
	day, ok := calendar.NormalizeDay(req.Day)
	if !ok {
		uc.logger.Warn("GetDaySchedule: invalid day %q", req.Day)
		return nil, ErrInvalidDay
	}
	date, err := uc.calendar.DateForDay(day)
	if err != nil {
		uc.logger.Warn("GetDaySchedule: day %s is not bookable", day)
		return nil, ErrInvalidDay
	}

	// 2. Переводим просроченные записи в expired.
	// Ошибка не фатальна: чтение ниже само отбрасывает просроченные pending
	if _, err := uc.sweeper.SweepExpired(ctx); err != nil {
		uc.logger.Warn("GetDaySchedule: inline sweep failed: %v", err)
	}

	// 3. Получаем записи, занимающие слоты
	now := uc.calendar.Now()
	bookings, err := uc.bookingRepo.GetActiveByDate(ctx, date, now)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 4. Раскладываем по сетке
	return &Response{
		Day:   day,
		Slots: buildSchedule(bookings),
	}, nil
}
