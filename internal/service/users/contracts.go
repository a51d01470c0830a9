package users

import (
	"context"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, displayName, phone string, now time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string, now time.Time) error
	UpsertAdmin(ctx context.Context, username, displayName, passwordHash string) (*domain.User, error)
}

// PasswordHasher хеширование паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// Calendar источник текущего времени и ключа месяца
type Calendar interface {
	Now() time.Time
	CurrentMonthKey() string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
