package login

import (
	"errors"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/service/sessions"
	"github.com/evilazio/barbershop-booking/internal/service/users"
)

const (
	msgMissingCredentials = "Informe usuario e senha."
	msgInvalidCredentials = "Credenciais invalidas."
	msgLoggedIn           = "Login realizado."
	msgInternal           = "Erro interno ao realizar login."
)

type Handler struct {
	users    UserService
	sessions SessionService
	logger   Logger
}

func NewHandler(users UserService, sessions SessionService, logger Logger) *Handler {
	return &Handler{
		users:    users,
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgMissingCredentials)
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrMissingFields):
			handlers.RespondBadRequest(w, msgMissingCredentials)
		case errors.Is(err, users.ErrInvalidCredentials):
			h.logger.Warn("POST /login - Invalid credentials for username=%q", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		default:
			h.logger.Error("POST /login - Failed to login: %v", err)
			handlers.RespondError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	session, err := h.sessions.Create(r.Context(), user.ID, sessions.ClientMeta{
		UserAgent:  r.UserAgent(),
		RemoteAddr: r.RemoteAddr,
	})
	if err != nil {
		h.logger.Error("POST /login - Failed to create session for user_id=%d: %v", user.ID, err)
		handlers.RespondError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	h.logger.Info("POST /login - User logged in: user_id=%d", user.ID)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Message: msgLoggedIn,
		Token:   session.Token,
		User:    user,
	})
}
