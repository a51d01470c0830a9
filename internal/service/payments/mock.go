package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	ProviderMock = "mock"

	mockPixKeyDomain = "@pix.evilazio"
)

// MockProvider локальный провайдер: дескриптор синтезируется без внешних вызовов,
// подтверждение приходит через generic webhook
type MockProvider struct {
	pixKey string
}

// NewMockProvider pixKey == "" означает случайный ключ на каждый платеж
func NewMockProvider(pixKey string) *MockProvider {
	return &MockProvider{pixKey: pixKey}
}

func (p *MockProvider) Name() string {
	return ProviderMock
}

func (p *MockProvider) CreatePixCharge(_ context.Context, req ChargeRequest) (*Charge, error) {
	key := p.pixKey
	if key == "" {
		key = strings.ReplaceAll(uuid.NewString(), "-", "")[:12] + mockPixKeyDomain
	}

	qrText := fmt.Sprintf("PIX|%s|%s|%s", key, req.PaymentCode, req.Description)

	return &Charge{
		PixKey:     key,
		QRText:     qrText,
		QRImageURL: QRImageURL(qrText),
	}, nil
}

func (p *MockProvider) GetPayment(_ context.Context, providerPaymentID string) (*ProviderPayment, error) {
	return nil, fmt.Errorf("%w: mock provider cannot fetch payment %q", ErrNotSupported, providerPaymentID)
}
