package update_profile

import (
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
	"github.com/evilazio/barbershop-booking/internal/service/users"
)

const (
	msgInvalidRequestBody  = "Requisicao invalida."
	msgInvalidSession      = "Sessao invalida."
	msgDisplayNameRequired = "Nome de exibicao obrigatorio."
	msgPhoneRequired       = "Telefone obrigatorio."
	msgPhoneTooLong        = "Telefone muito longo."
	msgPasswordTooShort    = "A senha deve ter pelo menos 6 caracteres."
	msgUserNotFound        = "Usuario nao encontrado."
	msgUpdated             = "Conta atualizada com sucesso."
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/profile
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgInvalidSession)
		return
	}

	var req UpdateProfileRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /profile - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), userID, req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, users.ErrDisplayNameRequired):
			handlers.RespondBadRequest(w, msgDisplayNameRequired)
		case errors.Is(err, users.ErrPhoneRequired):
			handlers.RespondBadRequest(w, msgPhoneRequired)
		case errors.Is(err, users.ErrPhoneTooLong):
			handlers.RespondBadRequest(w, msgPhoneTooLong)
		case errors.Is(err, users.ErrPasswordTooShort):
			handlers.RespondBadRequest(w, msgPasswordTooShort)
		case errors.Is(err, users.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)
		default:
			h.logger.Error("PUT /profile - Failed to update user_id=%d: %v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /profile - Profile updated: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, UpdateProfileResponse{Message: msgUpdated, User: user})
}
