package domain

import (
	"time"

	"github.com/evilazio/barbershop-booking/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingPayment BookingStatus = "pending_payment"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusExpired        BookingStatus = "expired"
)

// Booking represents a reserved slot of the shop calendar
type Booking struct {
	ID     int64
	UserID int64

	// Snapshot пользователя на момент бронирования
	Username    string
	DisplayName string
	Phone       string

	Service         string // название услуги в том виде, как его ввел клиент
	ServiceKey      string
	DurationMinutes int
	BookingDate     time.Time
	StartTime       types.TimeString
	Status          BookingStatus

	Payment Payment

	PaidAt             *time.Time
	CancelledAt        *time.Time
	CancelledBy        *string
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Day returns the day of month in "DD" form
func (b *Booking) Day() string {
	return b.BookingDate.Format(DayFormat)
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPendingPayment || b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled by an admin
func (b *Booking) CanBeCancelled() bool {
	return b.IsActive()
}

// IsPaymentWindowOpen returns true while a pending booking can still be paid
func (b *Booking) IsPaymentWindowOpen(now time.Time) bool {
	return b.Status == StatusPendingPayment &&
		b.Payment.ExpiresAt != nil &&
		b.Payment.ExpiresAt.After(now)
}

// BookingsFilter фильтр для списка бронирований
type BookingsFilter struct {
	UserID   *int64          // nil - все пользователи (админ)
	Date     *time.Time      // конкретная дата (опционально)
	Statuses []BookingStatus // пусто - любые статусы
}
