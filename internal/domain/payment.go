package domain

import "time"

// PaymentMethod способ оплаты бронирования
type PaymentMethod string

const (
	PaymentMethodPix  PaymentMethod = "pix"
	PaymentMethodPlan PaymentMethod = "plan"
)

// PaymentStatus canonical payment status shared by every provider
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// Payment payment sub-record of a booking or a plan purchase
// Пустые строки означают отсутствие значения (например, для оплаты планом)
type Payment struct {
	Method            PaymentMethod
	PlanType          PlanType
	Provider          string
	ProviderPaymentID string
	ExternalReference string
	PixKey            string
	PaymentCode       string
	QRText            string
	QRImageURL        string
	Amount            float64
	ExpiresAt         *time.Time
}

// PaymentKeys ключи, по которым уведомление об оплате ищет свою запись.
// Пустые поля в поиске не участвуют
type PaymentKeys struct {
	IDs               []int64
	ProviderPaymentID string
	ExternalReference string
	PaymentCodes      []string
}

func (k PaymentKeys) IsEmpty() bool {
	return len(k.IDs) == 0 && k.ProviderPaymentID == "" && k.ExternalReference == "" && len(k.PaymentCodes) == 0
}
