package register

import (
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/service/users"
)

const (
	msgInvalidRequestBody = "Requisicao invalida."
	msgMissingFields      = "Preencha usuario, nome de exibicao, telefone e senha."
	msgPasswordTooShort   = "A senha deve ter pelo menos 6 caracteres."
	msgPhoneRequired      = "Telefone obrigatorio."
	msgPhoneTooLong       = "Telefone muito longo."
	msgUsernameTooLong    = "Usuario muito longo."
	msgUsernameReserved   = "Usuario indisponivel."
	msgUsernameTaken      = "Usuario ja cadastrado."
	msgRegistered         = "Cadastro realizado com sucesso."
	msgInternal           = "Erro interno ao registrar usuario."
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

// Handle POST /api/register
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /register - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	user, err := h.service.Register(r.Context(), req.ToServiceRequest())
	if err != nil {
		switch {
		case errors.Is(err, users.ErrMissingFields):
			handlers.RespondBadRequest(w, msgMissingFields)
		case errors.Is(err, users.ErrPasswordTooShort):
			handlers.RespondBadRequest(w, msgPasswordTooShort)
		case errors.Is(err, users.ErrPhoneRequired):
			handlers.RespondBadRequest(w, msgPhoneRequired)
		case errors.Is(err, users.ErrPhoneTooLong):
			handlers.RespondBadRequest(w, msgPhoneTooLong)
		case errors.Is(err, users.ErrUsernameTooLong):
			handlers.RespondBadRequest(w, msgUsernameTooLong)
		case errors.Is(err, users.ErrUsernameReserved):
			h.logger.Warn("POST /register - Reserved username requested: %q", req.Username)
			handlers.RespondConflict(w, msgUsernameReserved)
		case errors.Is(err, users.ErrUsernameTaken):
			handlers.RespondConflict(w, msgUsernameTaken)
		default:
			h.logger.Error("POST /register - Failed to register user: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	h.logger.Info("POST /register - User registered: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusCreated, RegisterResponse{Message: msgRegistered, User: user})
}
