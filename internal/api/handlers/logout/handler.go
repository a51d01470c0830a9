package logout

import (
	"context"
	"net/http"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/api/middleware"
)

const msgLoggedOut = "Logout realizado."

type SessionService interface {
	Revoke(ctx context.Context, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	sessions SessionService
	logger   Logger
}

func NewHandler(sessions SessionService, logger Logger) *Handler {
	return &Handler{
		sessions: sessions,
		logger:   logger,
	}
}

// Handle POST /api/logout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token, _ := middleware.GetToken(r.Context())
	userID, _ := middleware.GetUserID(r.Context())

	if err := h.sessions.Revoke(r.Context(), token); err != nil {
		h.logger.Error("POST /logout - Failed to revoke session of user_id=%d: %v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /logout - Session revoked: user_id=%d", userID)
	handlers.RespondJSON(w, http.StatusOK, handlers.MessageResponse{Message: msgLoggedOut})
}
