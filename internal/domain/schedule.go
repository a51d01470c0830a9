package domain

import "github.com/evilazio/barbershop-booking/pkg/types"

// SlotStatus состояние слота в расписании дня
type SlotStatus string

const (
	SlotAvailable      SlotStatus = "available"
	SlotPendingPayment SlotStatus = "pending_payment"
	SlotConfirmed      SlotStatus = "confirmed"
)

// ScheduleSlot one hourly slot of a day with the booking occupying it, if any
type ScheduleSlot struct {
	Time    types.TimeString
	Status  SlotStatus
	Booking *Booking
}

// IsAvailable returns true if nobody holds the slot
func (s *ScheduleSlot) IsAvailable() bool {
	return s.Booking == nil
}
