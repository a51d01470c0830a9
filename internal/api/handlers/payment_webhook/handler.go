package payment_webhook

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	confirmPayment "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
)

const (
	headerWebhookToken = "X-Webhook-Token"

	msgInvalidToken       = "Token de webhook invalido."
	msgInvalidRequestBody = "Requisicao invalida."
	msgNotMatched         = "Pagamento nao encontrado para confirmacao."
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	token   string
	logger  Logger
}

// NewHandler пустой token отключает проверку
func NewHandler(useCase ConfirmPaymentUseCase, token string, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		token:   token,
		logger:  logger,
	}
}

// Handle POST /api/webhooks/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		h.logger.Warn("POST /webhooks/payment - Invalid webhook token from %s", r.RemoteAddr)
		handlers.RespondUnauthorized(w, msgInvalidToken)
		return
	}

	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhooks/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToEvent())
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrReconciliationMiss):
			h.logger.Warn("POST /webhooks/payment - Nothing matched: payment_code=%q, provider_payment_id=%q, external_reference=%q",
				req.PaymentCode, req.ProviderPaymentID, req.ExternalReference)
			handlers.RespondJSON(w, http.StatusNotFound, WebhookResponse{OK: false, Message: msgNotMatched})
		default:
			h.logger.Error("POST /webhooks/payment - Failed to reconcile payment: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Ignored {
		h.logger.Info("POST /webhooks/payment - Notification ignored: reason=%s", result.Reason)
	} else {
		h.logger.Info("POST /webhooks/payment - Payment confirmed: type=%s, id=%d", result.Type, result.ID)
	}
	handlers.RespondJSON(w, http.StatusOK, FromResult(result))
}

func (h *Handler) authorized(r *http.Request) bool {
	if h.token == "" {
		return true
	}

	provided := r.Header.Get(headerWebhookToken)
	if provided == "" {
		provided = r.URL.Query().Get("token")
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.token)) == 1
}
