package mercadopago

import (
	"strconv"
	"time"
)

// Статусы платежа Mercado Pago
const (
	StatusApproved    = "approved"
	StatusPending     = "pending"
	StatusInProcess   = "in_process"
	StatusAuthorized  = "authorized"
	StatusInMediation = "in_mediation"
	StatusRejected    = "rejected"
	StatusCancelled   = "cancelled"
	StatusRefunded    = "refunded"
	StatusChargedBack = "charged_back"
)

const (
	PaymentMethodPix  = "pix"
	NotificationTopic = "payment"

	idempotencyHeader  = "X-Idempotency-Key"
	authorizationParam = "Bearer "
)

// CreatePaymentRequest тело POST /v1/payments
type CreatePaymentRequest struct {
	TransactionAmount float64 `json:"transaction_amount"`
	Description       string  `json:"description"`
	PaymentMethodID   string  `json:"payment_method_id"`
	ExternalReference string  `json:"external_reference"`
	NotificationURL   string  `json:"notification_url,omitempty"`
	Payer             Payer   `json:"payer"`
}

type Payer struct {
	Email string `json:"email"`
}

// Payment платеж в ответах POST /v1/payments и GET /v1/payments/{id}
type Payment struct {
	ID                 int64              `json:"id"`
	Status             string             `json:"status"`
	StatusDetail       string             `json:"status_detail"`
	ExternalReference  string             `json:"external_reference"`
	TransactionAmount  float64            `json:"transaction_amount"`
	DateApproved       *time.Time         `json:"date_approved"`
	DateOfExpiration   *time.Time         `json:"date_of_expiration"`
	PointOfInteraction PointOfInteraction `json:"point_of_interaction"`
}

// IDString идентификатор платежа в строковом виде
func (p *Payment) IDString() string {
	return strconv.FormatInt(p.ID, 10)
}

type PointOfInteraction struct {
	TransactionData TransactionData `json:"transaction_data"`
}

// TransactionData данные PIX: копия-и-вставка и QR в base64
type TransactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}

// Notification тело webhook уведомления
type Notification struct {
	ID     int64  `json:"id"`
	Type   string `json:"type"`
	Action string `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ErrorResponse модель ошибки API
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}
