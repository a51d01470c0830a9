package login

import (
	"context"

	"github.com/evilazio/barbershop-booking/internal/service/sessions"
	"github.com/evilazio/barbershop-booking/internal/service/users/models"
)

type UserService interface {
	Login(ctx context.Context, username, password string) (*models.UserResponse, error)
}

type SessionService interface {
	Create(ctx context.Context, userID int64, meta sessions.ClientMeta) (*sessions.Session, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
