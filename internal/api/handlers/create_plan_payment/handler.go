package create_plan_payment

import (
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	createPlanPurchase "github.com/evilazio/barbershop-booking/internal/usecase/create_plan_purchase"
)

const (
	msgInvalidRequestBody  = "Requisicao invalida."
	msgInvalidSession      = "Sessao invalida."
	msgAdminNoPlan         = "Admin nao precisa de plano."
	msgInvalidPlan         = "Plano invalido."
	msgInvalidPreferredCut = "Corte preferido invalido."
	msgProviderUnavailable = "Nao foi possivel gerar o pagamento PIX. Tente novamente."
	msgPaymentCreated      = "Pagamento PIX do plano gerado."
)

type Handler struct {
	useCase CreatePlanPurchaseUseCase
	logger  Logger
}

func NewHandler(useCase CreatePlanPurchaseUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/plans/create-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidSession)
		return
	}

	var req CreatePlanPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /plans/create-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(user))
	if err != nil {
		switch {
		case errors.Is(err, createPlanPurchase.ErrAdminNoPlan):
			handlers.RespondBadRequest(w, msgAdminNoPlan)

		case errors.Is(err, createPlanPurchase.ErrInvalidPlan):
			handlers.RespondBadRequest(w, msgInvalidPlan)

		case errors.Is(err, createPlanPurchase.ErrInvalidPreferredCut):
			handlers.RespondBadRequest(w, msgInvalidPreferredCut)

		case errors.Is(err, createPlanPurchase.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createPlanPurchase.ErrProviderUnavailable):
			h.logger.Error("POST /plans/create-payment - Payment provider failed: user_id=%d, error=%v", user.ID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderUnavailable)

		default:
			h.logger.Error("POST /plans/create-payment - Failed to create purchase: user_id=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /plans/create-payment - Purchase created: purchase_id=%d, user_id=%d, plan=%s",
		result.PurchaseID, user.ID, result.PlanType)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
