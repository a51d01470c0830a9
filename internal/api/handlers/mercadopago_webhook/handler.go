package mercadopago_webhook

import (
	"errors"
	"net/http"
	"strings"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/integrations/mercadopago"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
	confirmPayment "github.com/evilazio/barbershop-booking/internal/usecase/confirm_payment"
)

const (
	headerSignature = "x-signature"
	headerRequestID = "x-request-id"

	msgInvalidSignature   = "Assinatura invalida."
	msgInvalidRequestBody = "Requisicao invalida."
	msgProviderError      = "Falha ao consultar o pagamento."
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	fetcher PaymentFetcher
	secret  string
	logger  Logger
}

// NewHandler пустой secret отключает проверку подписи
func NewHandler(useCase ConfirmPaymentUseCase, fetcher PaymentFetcher, secret string, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		fetcher: fetcher,
		secret:  secret,
		logger:  logger,
	}
}

// Handle POST /api/webhooks/mercadopago
// Тип и id берутся из тела, для старого формата из query (type|topic, data.id|id)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var notification mercadopago.Notification
	if err := handlers.DecodeOptionalJSON(r, &notification); err != nil {
		h.logger.Warn("POST /webhooks/mercadopago - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	topic, dataID := notificationTarget(r, &notification)

	if h.secret != "" {
		err := mercadopago.VerifySignature(h.secret, r.Header.Get(headerSignature), r.Header.Get(headerRequestID), dataID)
		if err != nil {
			h.logger.Warn("POST /webhooks/mercadopago - Signature check failed: data_id=%q, error=%v", dataID, err)
			handlers.RespondUnauthorized(w, msgInvalidSignature)
			return
		}
	}

	if topic != topicPayment || dataID == "" {
		handlers.RespondJSON(w, http.StatusOK, WebhookResponse{OK: true, Ignored: true, Reason: reasonIgnoredTopic})
		return
	}

	payment, err := h.fetcher.FetchProviderPayment(r.Context(), dataID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("POST /webhooks/mercadopago - Payment unknown to provider: data_id=%s", dataID)
			handlers.RespondJSON(w, http.StatusOK, WebhookResponse{OK: true, Ignored: true, Reason: reasonNotMatched})
		case errors.Is(err, payments.ErrNotSupported):
			// повтор доставки ничего не изменит
			h.logger.Warn("POST /webhooks/mercadopago - Provider %q cannot fetch payments: data_id=%s", h.fetcher.ProviderName(), dataID)
			handlers.RespondJSON(w, http.StatusOK, WebhookResponse{OK: true, Ignored: true, Reason: reasonProviderNotSupported})
		default:
			// 502 заставит провайдера повторить доставку
			h.logger.Error("POST /webhooks/mercadopago - Failed to fetch payment: data_id=%s, error=%v", dataID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgProviderError)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), toEvent(payment))
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrReconciliationMiss):
			h.logger.Warn("POST /webhooks/mercadopago - Nothing matched: provider_payment_id=%s, external_reference=%q",
				payment.ProviderPaymentID, payment.ExternalReference)
			handlers.RespondJSON(w, http.StatusOK, WebhookResponse{OK: true, Ignored: true, Reason: reasonNotMatched})
		default:
			h.logger.Error("POST /webhooks/mercadopago - Failed to reconcile payment: provider_payment_id=%s, error=%v",
				payment.ProviderPaymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if !result.Ignored {
		h.logger.Info("POST /webhooks/mercadopago - Payment confirmed: type=%s, id=%d, provider_payment_id=%s",
			result.Type, result.ID, payment.ProviderPaymentID)
	}
	handlers.RespondJSON(w, http.StatusOK, fromResult(result))
}

func notificationTarget(r *http.Request, n *mercadopago.Notification) (topic, dataID string) {
	query := r.URL.Query()

	topic = n.Type
	if topic == "" {
		topic = query.Get("type")
	}
	if topic == "" {
		topic = query.Get("topic")
	}

	dataID = n.Data.ID
	if dataID == "" {
		dataID = query.Get("data.id")
	}
	if dataID == "" {
		dataID = query.Get("id")
	}
	return strings.ToLower(strings.TrimSpace(topic)), strings.TrimSpace(dataID)
}
