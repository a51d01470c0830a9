package create_booking

import (
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/pkg/types"
)

// Settings параметры записи из конфигурации
type Settings struct {
	PendingWindow  time.Duration // окно оплаты PIX
	PixDescription string        // описание платежа у провайдера
}

// Request модель запроса на создание бронирования
type Request struct {
	UserID        int64       // ID пользователя из сессии
	Role          domain.Role // роль пользователя из сессии
	Day           string      // "5" или "05"
	Time          string      // "HH:MM"
	Service       string      // название услуги, как ввел клиент
	Phone         string
	PaymentMethod string // pix | plan | premium, пусто = pix
}

// PaymentDetails данные для оплаты PIX
type PaymentDetails struct {
	PixKey      string
	PaymentCode string
	QRText      string
	QRImageURL  string
	Amount      float64
	ExpiresAt   time.Time
}

// Response модель ответа с созданным бронированием
type Response struct {
	BookingID       int64
	Day             string
	Time            types.TimeString
	Service         string
	DurationMinutes int
	Status          domain.BookingStatus
	Method          domain.PaymentMethod
	PlanType        domain.PlanType
	Payment         *PaymentDetails // nil для оплаты планом
	CreatedAt       time.Time
}
