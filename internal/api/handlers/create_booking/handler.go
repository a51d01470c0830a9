package create_booking

import (
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/service/plans"
	createBooking "github.com/evilazio/barbershop-booking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "Requisicao invalida."
	msgInvalidSession       = "Sessao invalida."
	msgAdminCannotBook      = "Admin nao realiza agendamento."
	msgInvalidDay           = "Escolha um dia valido no mes atual, sem datas passadas."
	msgInvalidTime          = "Horario invalido. Escolha entre 08:00 e 19:00."
	msgMissingServicePhone  = "Informe servico e telefone."
	msgInvalidService       = "Servico invalido para agendamento."
	msgInvalidPaymentMethod = "Forma de pagamento invalida."
	msgSlotTaken            = "Horario indisponivel para este dia."
	msgCommonPlanExhausted  = "Seus cortes do plano comum neste mes acabaram."
	msgPlanNotCovered       = "Seu plano atual nao cobre este servico. Compre um plano ou faca upgrade para Plus."
	msgProviderUnavailable  = "Nao foi possivel gerar o pagamento PIX. Tente novamente."
	msgUserNotFound         = "Usuario nao encontrado."
	msgConfirmedWithPlan    = "Agendamento confirmado usando o plano."
	msgPixReserved          = "Reserva criada. Realize o pagamento para confirmar."

	codePlanUpgradeRequired = "PLAN_UPGRADE_REQUIRED"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/bookings/create-payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidSession)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/create-payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(user))
	if err != nil {
		var refusal *createBooking.PlanRefusalError

		switch {
		case errors.Is(err, createBooking.ErrAdminCannotBook):
			handlers.RespondForbidden(w, msgAdminCannotBook)

		case errors.Is(err, createBooking.ErrInvalidDay):
			handlers.RespondBadRequest(w, msgInvalidDay)

		case errors.Is(err, createBooking.ErrInvalidTime):
			handlers.RespondBadRequest(w, msgInvalidTime)

		case errors.Is(err, createBooking.ErrMissingServiceOrPhone):
			handlers.RespondBadRequest(w, msgMissingServicePhone)

		case errors.Is(err, createBooking.ErrInvalidService):
			handlers.RespondBadRequest(w, msgInvalidService)

		case errors.Is(err, createBooking.ErrInvalidPaymentMethod):
			handlers.RespondBadRequest(w, msgInvalidPaymentMethod)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/create-payment - Invalid input: user_id=%d, error=%v", user.ID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings/create-payment - Slot taken: user_id=%d, day=%q, time=%q", user.ID, req.Day, req.Time)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.As(err, &refusal):
			h.logger.Info("POST /bookings/create-payment - Plan refused: user_id=%d, reason=%s", user.ID, refusal.Reason)
			h.respondPlanUpgrade(w, refusal.Reason)

		case errors.Is(err, createBooking.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrProviderUnavailable):
			h.logger.Error("POST /bookings/create-payment - Payment provider failed: user_id=%d, error=%v", user.ID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderUnavailable)

		default:
			h.logger.Error("POST /bookings/create-payment - Failed to create booking: user_id=%d, error=%v", user.ID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/create-payment - Booking created: booking_id=%d, user_id=%d, method=%s",
		result.BookingID, user.ID, result.Method)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func (h *Handler) respondPlanUpgrade(w http.ResponseWriter, reason string) {
	message := msgPlanNotCovered
	if reason == plans.ReasonCommonPlanExhausted {
		message = msgCommonPlanExhausted
	}

	handlers.RespondJSON(w, http.StatusPaymentRequired, PlanUpgradeResponse{
		Message:          message,
		Code:             codePlanUpgradeRequired,
		Reason:           reason,
		AllowPixFallback: true,
	})
}
