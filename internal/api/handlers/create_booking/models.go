package create_booking

import (
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	createBooking "github.com/evilazio/barbershop-booking/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Day           string `json:"day"`  // "5" или "05"
	Time          string `json:"time"` // "10:00"
	Service       string `json:"service"`
	Phone         string `json:"phone"`
	PaymentMethod string `json:"paymentMethod"` // pix | plan | premium
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Message         string           `json:"message"`
	BookingID       int64            `json:"bookingId"`
	DurationMinutes int              `json:"durationMinutes"`
	Status          string           `json:"status"`
	Payment         *PaymentResponse `json:"payment,omitempty"`
}

// PaymentResponse данные PIX для оплаты резерва
type PaymentResponse struct {
	PixKey      string    `json:"pixKey"`
	PaymentCode string    `json:"paymentCode"`
	QRText      string    `json:"qrText"`
	QRImageURL  string    `json:"qrImageUrl"`
	Amount      float64   `json:"amount"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// PlanUpgradeResponse тело ответа 402
type PlanUpgradeResponse struct {
	Message          string `json:"message"`
	Code             string `json:"code"`
	Reason           string `json:"reason"`
	AllowPixFallback bool   `json:"allowPixFallback"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(user *domain.User) *createBooking.Request {
	return &createBooking.Request{
		UserID:        user.ID,
		Role:          user.Role,
		Day:           r.Day,
		Time:          r.Time,
		Service:       r.Service,
		Phone:         r.Phone,
		PaymentMethod: r.PaymentMethod,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		BookingID:       resp.BookingID,
		DurationMinutes: resp.DurationMinutes,
		Status:          string(resp.Status),
	}

	if resp.Payment == nil {
		out.Message = msgConfirmedWithPlan
		return out
	}

	out.Message = msgPixReserved
	out.Payment = &PaymentResponse{
		PixKey:      resp.Payment.PixKey,
		PaymentCode: resp.Payment.PaymentCode,
		QRText:      resp.Payment.QRText,
		QRImageURL:  resp.Payment.QRImageURL,
		Amount:      resp.Payment.Amount,
		ExpiresAt:   resp.Payment.ExpiresAt,
	}
	return out
}
