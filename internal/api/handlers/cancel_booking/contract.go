package cancel_booking

import (
	"context"

	"github.com/evilazio/barbershop-booking/internal/service/bookings/models"
)

type BookingService interface {
	AdminCancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
