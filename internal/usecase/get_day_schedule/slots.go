package get_day_schedule

import (
	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
	"github.com/evilazio/barbershop-booking/pkg/types"
)

// buildSchedule раскладывает активные записи по сетке слотов дня
func buildSchedule(bookings []*domain.Booking) []domain.ScheduleSlot {
	byTime := make(map[types.TimeString]*domain.Booking, len(bookings))
	for _, b := range bookings {
		byTime[b.StartTime] = b
	}

	grid := calendar.DailySlots()
	slots := make([]domain.ScheduleSlot, 0, len(grid))
	for _, t := range grid {
		slot := domain.ScheduleSlot{Time: t, Status: domain.SlotAvailable}
		if b, ok := byTime[t]; ok {
			slot.Booking = b
			slot.Status = slotStatus(b.Status)
		}
		slots = append(slots, slot)
	}

	return slots
}

func slotStatus(status domain.BookingStatus) domain.SlotStatus {
	if status == domain.StatusConfirmed {
		return domain.SlotConfirmed
	}
	return domain.SlotPendingPayment
}
