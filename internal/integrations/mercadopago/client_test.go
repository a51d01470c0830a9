package mercadopago

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evilazio/barbershop-booking/pkg/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "TEST-TOKEN", 2*time.Second, logger.Nop())
}

func TestCreatePixPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payments", r.URL.Path)
		assert.Equal(t, "Bearer TEST-TOKEN", r.Header.Get("Authorization"))
		assert.Equal(t, "idem-1", r.Header.Get("X-Idempotency-Key"))

		var body CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "pix", body.PaymentMethodID)
		assert.Equal(t, "booking:7:EVLZ1", body.ExternalReference)
		assert.Equal(t, "cliente@example.com", body.Payer.Email)
		assert.InDelta(t, 35.0, body.TransactionAmount, 0.001)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{
			"id": 123456789,
			"status": "pending",
			"external_reference": "booking:7:EVLZ1",
			"point_of_interaction": {"transaction_data": {
				"qr_code": "00020126...",
				"qr_code_base64": "iVBORw0KGgo=",
				"ticket_url": "https://www.mercadopago.com.br/payments/123456789/ticket"
			}}
		}`))
	})

	payment, err := client.CreatePixPayment(context.Background(), &CreatePaymentRequest{
		TransactionAmount: 35,
		Description:       "Corte social",
		ExternalReference: "booking:7:EVLZ1",
		Payer:             Payer{Email: "cliente@example.com"},
	}, "idem-1")

	require.NoError(t, err)
	assert.Equal(t, "123456789", payment.IDString())
	assert.Equal(t, StatusPending, payment.Status)
	assert.Equal(t, "00020126...", payment.PointOfInteraction.TransactionData.QRCode)
}

func TestGetPayment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/payments/42", r.URL.Path)
		_, _ = w.Write([]byte(`{"id": 42, "status": "approved", "external_reference": "plan:3:PLAN9",
			"date_approved": "2026-10-15T10:05:00.000-03:00"}`))
	})

	payment, err := client.GetPayment(context.Background(), "42")

	require.NoError(t, err)
	assert.Equal(t, StatusApproved, payment.Status)
	assert.Equal(t, "plan:3:PLAN9", payment.ExternalReference)
	require.NotNil(t, payment.DateApproved)
	assert.Equal(t, 15, payment.DateApproved.Day())
}

func TestClient_ErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: ErrPaymentNotFound},
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "bad request", status: http.StatusBadRequest, body: `{"message":"invalid amount"}`, wantErr: ErrInvalidResponse},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetPayment(context.Background(), "1")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "t", 200*time.Millisecond, logger.Nop())

	_, err := client.GetPayment(context.Background(), "1")
	assert.ErrorIs(t, err, ErrInternal)
}
