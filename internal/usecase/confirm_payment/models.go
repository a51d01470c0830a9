package confirm_payment

import (
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

// Event каноническое уведомление об оплате, собранное из любого webhook
type Event struct {
	BookingID         *int64
	PurchaseID        *int64
	ProviderPaymentID string
	ExternalReference string
	PaymentCode       string
	Status            domain.PaymentStatus
	PaidAt            *time.Time // nil = время обработки
}

// Target тип подтвержденной записи
type Target string

const (
	TargetBooking      Target = "booking"
	TargetPlanPurchase Target = "planPurchase"
)

// Result итог обработки уведомления
type Result struct {
	Ignored bool
	Reason  string // для Ignored: status_<status> или already_confirmed

	Type   Target
	ID     int64
	Status string
}
