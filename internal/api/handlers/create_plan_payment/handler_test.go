package create_plan_payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/domain"
	createPlanPurchase "github.com/evilazio/barbershop-booking/internal/usecase/create_plan_purchase"
	"github.com/evilazio/barbershop-booking/pkg/logger"
)

type useCaseMock struct {
	mock.Mock
}

func (m *useCaseMock) Execute(ctx context.Context, req *createPlanPurchase.Request) (*createPlanPurchase.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createPlanPurchase.Response), args.Error(1)
}

var user = &domain.User{ID: 7, Username: "joao", Role: domain.RoleUser}

func buy(uc *useCaseMock, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/plans/create-payment", strings.NewReader(body))
	req = req.WithContext(middleware.WithUser(req.Context(), user, "token"))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := new(useCaseMock)
	expiresAt := time.Date(2026, 10, 15, 12, 20, 0, 0, time.UTC)
	uc.On("Execute", mock.Anything, &createPlanPurchase.Request{UserID: 7, Role: domain.RoleUser, PlanType: "plus"}).
		Return(&createPlanPurchase.Response{
			PurchaseID: 3,
			PlanType:   domain.PlanPlus,
			Amount:     79.9,
			Status:     domain.PurchasePendingPayment,
			Payment: domain.Payment{
				PixKey:      "key",
				PaymentCode: "PLAN-1",
				QRText:      "qr",
				QRImageURL:  "https://img",
				ExpiresAt:   &expiresAt,
			},
		}, nil)

	rec := buy(uc, `{"planType":"plus"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"message": "Pagamento PIX do plano gerado.",
		"purchaseId": 3,
		"planType": "plus",
		"amount": 79.9,
		"status": "pending_payment",
		"payment": {"pixKey":"key","paymentCode":"PLAN-1","qrText":"qr","qrImageUrl":"https://img","expiresAt":"2026-10-15T12:20:00Z"}
	}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"admin", createPlanPurchase.ErrAdminNoPlan, http.StatusBadRequest, msgAdminNoPlan},
		{"invalid plan", createPlanPurchase.ErrInvalidPlan, http.StatusBadRequest, msgInvalidPlan},
		{"preferred cut", createPlanPurchase.ErrInvalidPreferredCut, http.StatusBadRequest, msgInvalidPreferredCut},
		{"provider", createPlanPurchase.ErrProviderUnavailable, http.StatusBadGateway, msgProviderUnavailable},
		{"internal", createPlanPurchase.ErrInternal, http.StatusInternalServerError, "Erro interno do servidor."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(useCaseMock)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := buy(uc, `{"planType":"gold"}`)

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.msg)
		})
	}
}
