package payments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/integrations/mercadopago"
	"github.com/evilazio/barbershop-booking/pkg/logger"
)

func TestMockProvider_CreatePixCharge(t *testing.T) {
	p := NewMockProvider("chave@pix.evilazio")

	charge, err := p.CreatePixCharge(context.Background(), ChargeRequest{
		Amount:      35,
		Description: "Evilazio Barbershop",
		PaymentCode: "EVLZ1",
	})

	require.NoError(t, err)
	assert.Equal(t, "chave@pix.evilazio", charge.PixKey)
	assert.Equal(t, "PIX|chave@pix.evilazio|EVLZ1|Evilazio Barbershop", charge.QRText)
	assert.Equal(t, QRImageURL(charge.QRText), charge.QRImageURL)
	assert.Empty(t, charge.ProviderPaymentID)
}

func TestMockProvider_RandomKey(t *testing.T) {
	p := NewMockProvider("")

	charge, err := p.CreatePixCharge(context.Background(), ChargeRequest{PaymentCode: "EVLZ1"})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(charge.PixKey, "@pix.evilazio"))

	_, err = p.GetPayment(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNotSupported)
}

func newMercadoPagoProvider(t *testing.T, handler http.HandlerFunc) *MercadoPagoProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := mercadopago.NewClient(srv.URL, "token", time.Second, logger.Nop())
	return NewMercadoPagoProvider(client, "cliente@example.com", "https://example.com/api/webhooks/mercadopago")
}

func TestMercadoPagoProvider_CreatePixCharge(t *testing.T) {
	p := newMercadoPagoProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("X-Idempotency-Key"))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 987, "status": "pending",
			"point_of_interaction": {"transaction_data": {"qr_code": "000201PIX", "qr_code_base64": "QUJD"}}}`))
	})

	charge, err := p.CreatePixCharge(context.Background(), ChargeRequest{
		Amount:            39.9,
		Description:       "Plano COMMON Evilazio",
		PaymentCode:       "PLAN1",
		ExternalReference: "plan:1:PLAN1",
	})

	require.NoError(t, err)
	assert.Equal(t, "987", charge.ProviderPaymentID)
	assert.Equal(t, "000201PIX", charge.QRText)
	assert.Equal(t, "data:image/png;base64,QUJD", charge.QRImageURL)
}

func TestMercadoPagoProvider_CreatePixCharge_NoTransactionData(t *testing.T) {
	p := newMercadoPagoProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": 987, "status": "rejected"}`))
	})

	_, err := p.CreatePixCharge(context.Background(), ChargeRequest{})
	assert.ErrorIs(t, err, mercadopago.ErrInvalidResponse)
}

func TestMercadoPagoProvider_GetPayment(t *testing.T) {
	p := newMercadoPagoProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/404") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id": 55, "status": "approved", "external_reference": "booking:9:EVLZ9",
			"date_approved": "2026-10-15T10:00:00Z"}`))
	})

	payment, err := p.GetPayment(context.Background(), "55")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, payment.Status)
	assert.Equal(t, "approved", payment.RawStatus)
	assert.Equal(t, "booking:9:EVLZ9", payment.ExternalReference)
	require.NotNil(t, payment.PaidAt)

	_, err = p.GetPayment(context.Background(), "404")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
