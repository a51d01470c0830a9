package payments

import (
	"context"
	"errors"
	"fmt"
)

// Gateway фасад над выбранным провайдером
type Gateway struct {
	provider Provider
	logger   Logger
}

func NewGateway(provider Provider, logger Logger) *Gateway {
	return &Gateway{
		provider: provider,
		logger:   logger,
	}
}

func (g *Gateway) ProviderName() string {
	return g.provider.Name()
}

// BuildPixDescriptor создает платеж у провайдера.
// Любая ошибка провайдера превращается в ErrProviderUnavailable
func (g *Gateway) BuildPixDescriptor(
	ctx context.Context,
	amount float64,
	description string,
	paymentCode string,
	externalReference string,
) (*Descriptor, error) {
	charge, err := g.provider.CreatePixCharge(ctx, ChargeRequest{
		Amount:            amount,
		Description:       description,
		PaymentCode:       paymentCode,
		ExternalReference: externalReference,
	})
	if err != nil {
		g.logger.Error("BuildPixDescriptor: provider=%s external_reference=%s: %v",
			g.provider.Name(), externalReference, err)
		return nil, fmt.Errorf("%w: BuildPixDescriptor - create charge: %v", ErrProviderUnavailable, err)
	}

	g.logger.Info("BuildPixDescriptor: provider=%s external_reference=%s provider_payment_id=%s",
		g.provider.Name(), externalReference, charge.ProviderPaymentID)

	return &Descriptor{
		Provider:          g.provider.Name(),
		ProviderPaymentID: charge.ProviderPaymentID,
		ExternalReference: externalReference,
		PixKey:            charge.PixKey,
		PaymentCode:       paymentCode,
		QRText:            charge.QRText,
		QRImageURL:        charge.QRImageURL,
	}, nil
}

// FetchProviderPayment запрашивает состояние платежа у провайдера
func (g *Gateway) FetchProviderPayment(ctx context.Context, providerPaymentID string) (*ProviderPayment, error) {
	payment, err := g.provider.GetPayment(ctx, providerPaymentID)
	if err != nil {
		if errors.Is(err, ErrPaymentNotFound) || errors.Is(err, ErrNotSupported) {
			return nil, err
		}
		g.logger.Error("FetchProviderPayment: provider=%s id=%s: %v", g.provider.Name(), providerPaymentID, err)
		return nil, fmt.Errorf("%w: FetchProviderPayment - get payment: %v", ErrProviderUnavailable, err)
	}
	return payment, nil
}
