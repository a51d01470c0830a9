package payments

import (
	"strings"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

// NormalizeStatus приводит статус провайдера или generic webhook к paid|pending|failed.
// Неизвестные значения считаются pending
func NormalizeStatus(raw string) domain.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "paid", "approved", "succeeded", "confirmed", "completed":
		return domain.PaymentStatusPaid
	case "rejected", "failed", "cancelled", "canceled", "refunded", "charged_back", "expired":
		return domain.PaymentStatusFailed
	default:
		// pending, in_process, authorized, in_mediation и все неизвестные
		return domain.PaymentStatusPending
	}
}
