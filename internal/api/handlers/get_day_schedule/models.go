package get_day_schedule

import (
	"github.com/evilazio/barbershop-booking/internal/domain"
	getDaySchedule "github.com/evilazio/barbershop-booking/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Day   string `json:"day"`
	Slots []Slot `json:"slots"`
}

// Slot модель часового слота
type Slot struct {
	Time    string       `json:"time"`
	Status  string       `json:"status"`
	Booking *SlotBooking `json:"booking,omitempty"`
}

// SlotBooking запись, занимающая слот. Длительность и окончание видны только администратору
type SlotBooking struct {
	ID              int64  `json:"id"`
	DisplayName     string `json:"displayName"`
	Username        string `json:"username"`
	Service         string `json:"service"`
	Phone           string `json:"phone"`
	DurationMinutes *int   `json:"durationMinutes,omitempty"`
	EndTime         string `json:"endTime,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response, admin bool) *DayScheduleResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			Time:    slot.Time.String(),
			Status:  string(slot.Status),
			Booking: fromDomainBooking(slot.Booking, admin),
		}
	}

	return &DayScheduleResponse{
		Day:   resp.Day,
		Slots: slots,
	}
}

func fromDomainBooking(b *domain.Booking, admin bool) *SlotBooking {
	if b == nil {
		return nil
	}

	booking := &SlotBooking{
		ID:          b.ID,
		DisplayName: b.DisplayName,
		Username:    b.Username,
		Service:     b.Service,
		Phone:       b.Phone,
	}
	if admin {
		duration := b.DurationMinutes
		booking.DurationMinutes = &duration
		if end, err := b.StartTime.AddMinutes(duration); err == nil {
			booking.EndTime = end.String()
		}
	}
	return booking
}
