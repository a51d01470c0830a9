package get_day_schedule

import "github.com/evilazio/barbershop-booking/internal/domain"

// Request модель запроса расписания дня
type Request struct {
	Day string // "5" или "05"
}

// Response расписание дня: все слоты сетки по порядку
type Response struct {
	Day   string // "DD"
	Slots []domain.ScheduleSlot
}
