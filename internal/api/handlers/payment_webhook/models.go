package payment_webhook

import (
	"strings"
	"time"

	"github.com/evilazio/barbershop-booking/internal/service/payments"
	confirmPayment "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
)

// WebhookRequest тело generic webhook, любое подмножество полей
type WebhookRequest struct {
	PaymentCode       string  `json:"paymentCode"`
	BookingID         *int64  `json:"bookingId"`
	PurchaseID        *int64  `json:"purchaseId"`
	ProviderPaymentID string  `json:"providerPaymentId"`
	ExternalReference string  `json:"externalReference"`
	Status            string  `json:"status"`
	PaidAt            *string `json:"paidAt"`
}

// WebhookResponse ответ webhook
type WebhookResponse struct {
	OK      bool   `json:"ok"`
	Ignored bool   `json:"ignored,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Type    string `json:"type,omitempty"`
	ID      int64  `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToEvent приводит тело к каноническому событию. Нераспознанный paidAt отбрасывается
func (r *WebhookRequest) ToEvent() confirmPayment.Event {
	event := confirmPayment.Event{
		BookingID:         r.BookingID,
		PurchaseID:        r.PurchaseID,
		ProviderPaymentID: strings.TrimSpace(r.ProviderPaymentID),
		ExternalReference: strings.TrimSpace(r.ExternalReference),
		PaymentCode:       strings.TrimSpace(r.PaymentCode),
		Status:            payments.NormalizeStatus(r.Status),
	}

	if r.PaidAt != nil {
		if paidAt, err := time.Parse(time.RFC3339, strings.TrimSpace(*r.PaidAt)); err == nil {
			event.PaidAt = &paidAt
		}
	}
	return event
}

func FromResult(result *confirmPayment.Result) *WebhookResponse {
	// для игнорируемого статуса тип и id пустые и не попадают в ответ
	return &WebhookResponse{
		OK:      true,
		Ignored: result.Ignored,
		Reason:  result.Reason,
		Type:    string(result.Type),
		ID:      result.ID,
		Status:  result.Status,
	}
}
