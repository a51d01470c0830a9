package domain

import "time"

// PurchaseStatus статус покупки плана
type PurchaseStatus string

const (
	PurchasePendingPayment PurchaseStatus = "pending_payment"
	PurchaseConfirmed      PurchaseStatus = "confirmed"
	PurchaseExpired        PurchaseStatus = "expired"
)

// PlanPurchase a request to buy a monthly plan, paid via PIX
type PlanPurchase struct {
	ID           int64
	UserID       int64
	PlanType     PlanType
	PreferredCut string
	Amount       float64
	Status       PurchaseStatus
	Payment      Payment
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPaymentWindowOpen returns true while the purchase can still be paid
func (p *PlanPurchase) IsPaymentWindowOpen(now time.Time) bool {
	return p.Status == PurchasePendingPayment &&
		p.Payment.ExpiresAt != nil &&
		p.Payment.ExpiresAt.After(now)
}
