package create_plan_payment

import (
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	createPlanPurchase "github.com/evilazio/barbershop-booking/internal/usecase/create_plan_purchase"
)

// CreatePlanPaymentRequest HTTP request model
type CreatePlanPaymentRequest struct {
	PlanType     string `json:"planType"`
	PreferredCut string `json:"preferredCut,omitempty"`
}

// PlanPaymentResponse HTTP response model
type PlanPaymentResponse struct {
	Message      string          `json:"message"`
	PurchaseID   int64           `json:"purchaseId"`
	PlanType     string          `json:"planType"`
	PreferredCut string          `json:"preferredCut,omitempty"`
	Amount       float64         `json:"amount"`
	Status       string          `json:"status"`
	Payment      PaymentResponse `json:"payment"`
}

// PaymentResponse данные PIX для оплаты плана
type PaymentResponse struct {
	PixKey      string     `json:"pixKey"`
	PaymentCode string     `json:"paymentCode"`
	QRText      string     `json:"qrText"`
	QRImageURL  string     `json:"qrImageUrl"`
	ExpiresAt   *time.Time `json:"expiresAt"`
}

func (r *CreatePlanPaymentRequest) ToUseCaseRequest(user *domain.User) *createPlanPurchase.Request {
	return &createPlanPurchase.Request{
		UserID:       user.ID,
		Role:         user.Role,
		PlanType:     r.PlanType,
		PreferredCut: r.PreferredCut,
	}
}

func FromUseCaseResponse(resp *createPlanPurchase.Response) *PlanPaymentResponse {
	return &PlanPaymentResponse{
		Message:      msgPaymentCreated,
		PurchaseID:   resp.PurchaseID,
		PlanType:     string(resp.PlanType),
		PreferredCut: resp.PreferredCut,
		Amount:       resp.Amount,
		Status:       string(resp.Status),
		Payment: PaymentResponse{
			PixKey:      resp.Payment.PixKey,
			PaymentCode: resp.Payment.PaymentCode,
			QRText:      resp.Payment.QRText,
			QRImageURL:  resp.Payment.QRImageURL,
			ExpiresAt:   resp.Payment.ExpiresAt,
		},
	}
}
