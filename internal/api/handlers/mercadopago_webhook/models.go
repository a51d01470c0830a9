package mercadopago_webhook

import (
	"github.com/evilazio/barbershop-booking/internal/service/payments"
	confirmPayment "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
)

const (
	topicPayment = "payment"

	reasonNotMatched           = "not_matched"
	reasonIgnoredTopic         = "ignored_topic"
	reasonProviderNotSupported = "provider_not_supported"
)

// WebhookResponse подтверждение получения уведомления
type WebhookResponse struct {
	OK      bool   `json:"ok"`
	Ignored bool   `json:"ignored,omitempty"`
	Reason  string `json:"reason,omitempty"`
	Type    string `json:"type,omitempty"`
	ID      int64  `json:"id,omitempty"`
	Status  string `json:"status,omitempty"`
}

// toEvent событие строится только из ответа провайдера, тело уведомления не используется
func toEvent(payment *payments.ProviderPayment) confirmPayment.Event {
	return confirmPayment.Event{
		ProviderPaymentID: payment.ProviderPaymentID,
		ExternalReference: payment.ExternalReference,
		Status:            payment.Status,
		PaidAt:            payment.PaidAt,
	}
}

func fromResult(result *confirmPayment.Result) *WebhookResponse {
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
