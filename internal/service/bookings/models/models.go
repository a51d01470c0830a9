package models

import (
	"errors"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос списка бронирований
type ListBookingsRequest struct {
	UserID  int64
	IsAdmin bool
	Status  *string
}

// CancelBookingRequest запрос на отмену бронирования администратором
type CancelBookingRequest struct {
	AdminUsername string
	Reason        string
}

// Response модели

// PaymentResponse платежные данные бронирования
type PaymentResponse struct {
	Method      string     `json:"method"`
	PlanType    string     `json:"planType,omitempty"`
	Provider    string     `json:"provider,omitempty"`
	PixKey      string     `json:"pixKey,omitempty"`
	PaymentCode string     `json:"paymentCode,omitempty"`
	QRText      string     `json:"qrText,omitempty"`
	QRImageURL  string     `json:"qrImageUrl,omitempty"`
	Amount      float64    `json:"amount"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	Username        string  `json:"username"`
	DisplayName     string  `json:"displayName"`
	Phone           string  `json:"phone"`
	Service         string  `json:"service"`
	ServiceKey      string  `json:"serviceKey"`
	DurationMinutes int     `json:"durationMinutes"`
	Date            string  `json:"date"` // "2026-10-15"
	Day             string  `json:"day"`  // "15"
	Time            string  `json:"time"` // "10:00"
	Status          string  `json:"status"`

	Payment PaymentResponse `json:"payment"`

	PaidAt             *time.Time `json:"paidAt,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy        *string    `json:"cancelledBy,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:              b.ID,
		UserID:          b.UserID,
		Username:        b.Username,
		DisplayName:     b.DisplayName,
		Phone:           b.Phone,
		Service:         b.Service,
		ServiceKey:      b.ServiceKey,
		DurationMinutes: b.DurationMinutes,
		Date:            b.BookingDate.Format(domain.DateFormat),
		Day:             b.Day(),
		Time:            b.StartTime.String(),
		Status:          string(b.Status),
		Payment:         FromDomainPayment(b.Payment),

		PaidAt:             b.PaidAt,
		CancelledAt:        b.CancelledAt,
		CancelledBy:        b.CancelledBy,
		CancellationReason: b.CancellationReason,

		CreatedAt: b.CreatedAt,
	}
}

func FromDomainPayment(p domain.Payment) PaymentResponse {
	return PaymentResponse{
		Method:      string(p.Method),
		PlanType:    string(p.PlanType),
		Provider:    p.Provider,
		PixKey:      p.PixKey,
		PaymentCode: p.PaymentCode,
		QRText:      p.QRText,
		QRImageURL:  p.QRImageURL,
		Amount:      p.Amount,
		ExpiresAt:   p.ExpiresAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	switch s {
	case domain.StatusPendingPayment, domain.StatusConfirmed, domain.StatusCancelled, domain.StatusExpired:
		return s, nil
	}

	return "", ErrInvalidStatus
}
