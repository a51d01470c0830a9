package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/evilazio/barbershop-booking/internal/integrations/mercadopago"
)

const ProviderMercadoPago = "mercadopago"

// MercadoPagoClient интерфейс клиента Mercado Pago
type MercadoPagoClient interface {
	CreatePixPayment(ctx context.Context, req *mercadopago.CreatePaymentRequest, idempotencyKey string) (*mercadopago.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// MercadoPagoProvider провайдер поверх REST API Mercado Pago
type MercadoPagoProvider struct {
	client          MercadoPagoClient
	payerEmail      string
	notificationURL string
}

func NewMercadoPagoProvider(client MercadoPagoClient, payerEmail, notificationURL string) *MercadoPagoProvider {
	return &MercadoPagoProvider{
		client:          client,
		payerEmail:      payerEmail,
		notificationURL: notificationURL,
	}
}

func (p *MercadoPagoProvider) Name() string {
	return ProviderMercadoPago
}

func (p *MercadoPagoProvider) CreatePixCharge(ctx context.Context, req ChargeRequest) (*Charge, error) {
	payment, err := p.client.CreatePixPayment(ctx, &mercadopago.CreatePaymentRequest{
		TransactionAmount: req.Amount,
		Description:       req.Description,
		ExternalReference: req.ExternalReference,
		NotificationURL:   p.notificationURL,
		Payer:             mercadopago.Payer{Email: p.payerEmail},
	}, uuid.NewString())
	if err != nil {
		return nil, err
	}

	data := payment.PointOfInteraction.TransactionData
	if data.QRCode == "" {
		return nil, fmt.Errorf("%w: payment %d has no pix transaction data", mercadopago.ErrInvalidResponse, payment.ID)
	}

	qrImage := data.TicketURL
	if data.QRCodeBase64 != "" {
		qrImage = "data:image/png;base64," + data.QRCodeBase64
	}

	return &Charge{
		ProviderPaymentID: payment.IDString(),
		QRText:            data.QRCode,
		QRImageURL:        qrImage,
		ExpiresAt:         payment.DateOfExpiration,
	}, nil
}

func (p *MercadoPagoProvider) GetPayment(ctx context.Context, providerPaymentID string) (*ProviderPayment, error) {
	payment, err := p.client.GetPayment(ctx, providerPaymentID)
	if err != nil {
		if errors.Is(err, mercadopago.ErrPaymentNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, providerPaymentID)
		}
		return nil, err
	}

	return &ProviderPayment{
		ProviderPaymentID: payment.IDString(),
		Status:            NormalizeStatus(payment.Status),
		RawStatus:         payment.Status,
		ExternalReference: payment.ExternalReference,
		PaidAt:            payment.DateApproved,
	}, nil
}
