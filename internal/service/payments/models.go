package payments

import (
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

// ChargeRequest запрос на создание PIX платежа
type ChargeRequest struct {
	Amount            float64
	Description       string
	PaymentCode       string
	ExternalReference string
}

// Charge ответ провайдера на создание платежа
type Charge struct {
	ProviderPaymentID string
	PixKey            string
	QRText            string
	QRImageURL        string
	ExpiresAt         *time.Time
}

// Descriptor данные для оплаты, которые сохраняются в записи и отдаются клиенту
type Descriptor struct {
	Provider          string
	ProviderPaymentID string
	ExternalReference string
	PixKey            string
	PaymentCode       string
	QRText            string
	QRImageURL        string
}

// ApplyTo переносит дескриптор в платежную подзапись
func (d *Descriptor) ApplyTo(p *domain.Payment) {
	p.Provider = d.Provider
	p.ProviderPaymentID = d.ProviderPaymentID
	p.ExternalReference = d.ExternalReference
	p.PixKey = d.PixKey
	p.PaymentCode = d.PaymentCode
	p.QRText = d.QRText
	p.QRImageURL = d.QRImageURL
}

// ProviderPayment состояние платежа у провайдера в каноническом виде
type ProviderPayment struct {
	ProviderPaymentID string
	Status            domain.PaymentStatus
	RawStatus         string
	ExternalReference string
	PaidAt            *time.Time
}
