package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]domain.PaymentStatus{
		"paid":         domain.PaymentStatusPaid,
		"APPROVED":     domain.PaymentStatusPaid,
		"succeeded":    domain.PaymentStatusPaid,
		"confirmed":    domain.PaymentStatusPaid,
		"completed":    domain.PaymentStatusPaid,
		"pending":      domain.PaymentStatusPending,
		"in_process":   domain.PaymentStatusPending,
		"authorized":   domain.PaymentStatusPending,
		"in_mediation": domain.PaymentStatusPending,
		"rejected":     domain.PaymentStatusFailed,
		"cancelled":    domain.PaymentStatusFailed,
		"canceled":     domain.PaymentStatusFailed,
		"refunded":     domain.PaymentStatusFailed,
		"charged_back": domain.PaymentStatusFailed,
		"failed":       domain.PaymentStatusFailed,
		"expired":      domain.PaymentStatusFailed,
		"whatever":     domain.PaymentStatusPending,
		"":             domain.PaymentStatusPending,
	}

	for raw, want := range tests {
		assert.Equal(t, want, NormalizeStatus(raw), raw)
	}
}
