package mercadopago_webhook

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/integrations/mercadopago"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
	confirmPayment "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
	"github.com/evilazio/barbershop-booking/pkg/logger"
)

const secret = "whsec"

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, event confirmPayment.Event) (*confirmPayment.Result, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*confirmPayment.Result), args.Error(1)
}

type fetcherMock struct {
	mock.Mock
}

func (m *fetcherMock) FetchProviderPayment(ctx context.Context, id string) (*payments.ProviderPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.ProviderPayment), args.Error(1)
}

func (m *fetcherMock) ProviderName() string {
	return "mock"
}

func signedRequest(body, dataID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mercadopago", strings.NewReader(body))
	req.Header.Set(headerRequestID, "req-1")
	req.Header.Set(headerSignature, "ts=1700000000,v1="+mercadopago.Sign(secret, dataID, "req-1", "1700000000"))
	return req
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_RejectsBadSignature(t *testing.T) {
	uc, fetcher := new(useCaseMock), new(fetcherMock)
	h := NewHandler(uc, fetcher, secret, logger.Nop())

	req := signedRequest(`{"type":"payment","data":{"id":"123"}}`, "999")
	rec := serve(h, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	fetcher.AssertNotCalled(t, "FetchProviderPayment", mock.Anything, mock.Anything)
}

func TestHandle_IgnoresOtherTopics(t *testing.T) {
	uc, fetcher := new(useCaseMock), new(fetcherMock)
	h := NewHandler(uc, fetcher, secret, logger.Nop())

	rec := serve(h, signedRequest(`{"type":"merchant_order","data":{"id":"55"}}`, "55"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"ignored":true,"reason":"ignored_topic"}`, rec.Body.String())
	fetcher.AssertNotCalled(t, "FetchProviderPayment", mock.Anything, mock.Anything)
}

func TestHandle_ReconcilesFetchedPayment(t *testing.T) {
	uc, fetcher := new(useCaseMock), new(fetcherMock)
	fetcher.On("FetchProviderPayment", mock.Anything, "123").Return(&payments.ProviderPayment{
		ProviderPaymentID: "123",
		Status:            domain.PaymentStatusPaid,
		ExternalReference: "booking:42:EVLZ-1",
	}, nil)
	uc.On("Execute", mock.Anything, confirmPayment.Event{
		ProviderPaymentID: "123",
		ExternalReference: "booking:42:EVLZ-1",
		Status:            domain.PaymentStatusPaid,
	}).Return(&confirmPayment.Result{Type: confirmPayment.TargetBooking, ID: 42, Status: "confirmed"}, nil)

	h := NewHandler(uc, fetcher, secret, logger.Nop())
	rec := serve(h, signedRequest(`{"type":"payment","data":{"id":"123"}}`, "123"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"type":"booking","id":42,"status":"confirmed"}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandle_MissIsAcknowledged(t *testing.T) {
	uc, fetcher := new(useCaseMock), new(fetcherMock)
	fetcher.On("FetchProviderPayment", mock.Anything, "123").
		Return(&payments.ProviderPayment{ProviderPaymentID: "123", Status: domain.PaymentStatusPaid}, nil)
	uc.On("Execute", mock.Anything, mock.Anything).Return(nil, confirmPayment.ErrReconciliationMiss)

	h := NewHandler(uc, fetcher, "", logger.Nop())
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/mercadopago?topic=payment&id=123", nil)
	rec := serve(h, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"ignored":true,"reason":"not_matched"}`, rec.Body.String())
}

func TestHandle_ProviderFailureAsksForRedelivery(t *testing.T) {
	uc, fetcher := new(useCaseMock), new(fetcherMock)
	fetcher.On("FetchProviderPayment", mock.Anything, "123").
		Return(nil, errors.Join(payments.ErrProviderUnavailable, errors.New("timeout")))

	h := NewHandler(uc, fetcher, secret, logger.Nop())
	rec := serve(h, signedRequest(`{"type":"payment","data":{"id":"123"}}`, "123"))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_ProviderWithoutFetchIsAcknowledged(t *testing.T) {
	uc, fetcher := new(useCaseMock), new(fetcherMock)
	fetcher.On("FetchProviderPayment", mock.Anything, "123").
		Return(nil, fmt.Errorf("%w: mock provider cannot fetch payment", payments.ErrNotSupported))

	h := NewHandler(uc, fetcher, secret, logger.Nop())
	rec := serve(h, signedRequest(`{"type":"payment","data":{"id":"123"}}`, "123"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"ignored":true,"reason":"provider_not_supported"}`, rec.Body.String())
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_RedeliveryIsAcknowledged(t *testing.T) {
	uc, fetcher := new(useCaseMock), new(fetcherMock)
	fetcher.On("FetchProviderPayment", mock.Anything, "123").
		Return(&payments.ProviderPayment{ProviderPaymentID: "123", Status: domain.PaymentStatusPaid}, nil)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&confirmPayment.Result{
		Ignored: true,
		Reason:  "already_confirmed",
		Type:    confirmPayment.TargetBooking,
		ID:      9,
		Status:  "confirmed",
	}, nil)

	h := NewHandler(uc, fetcher, secret, logger.Nop())
	rec := serve(h, signedRequest(`{"type":"payment","data":{"id":"123"}}`, "123"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"ignored":true,"reason":"already_confirmed","type":"booking","id":9,"status":"confirmed"}`,
		rec.Body.String())
}
