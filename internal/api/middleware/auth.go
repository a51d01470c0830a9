package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/evilazio/barbershop-booking/internal/api/handlers"
	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/sessions"
	"github.com/evilazio/barbershop-booking/internal/service/users"
)

const (
	msgInvalidSession = "Sessao invalida."
	msgAdminOnly      = "Acesso restrito ao admin."
)

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// SessionAuthenticator проверка и отзыв bearer токенов
type SessionAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*sessions.Session, error)
	Revoke(ctx context.Context, token string) error
}

// UserLoader загрузка пользователя сессии
type UserLoader interface {
	GetDomainUser(ctx context.Context, id int64) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет заголовок Authorization: Bearer <token> и кладет пользователя в контекст
func Auth(sessionSvc SessionAuthenticator, userSvc UserLoader, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				handlers.RespondUnauthorized(w, msgInvalidSession)
				return
			}

			session, err := sessionSvc.Authenticate(r.Context(), token)
			if err != nil {
				if errors.Is(err, sessions.ErrSessionNotFound) {
					handlers.RespondUnauthorized(w, msgInvalidSession)
					return
				}
				logger.Error("Auth: failed to authenticate session: %v", err)
				handlers.RespondInternalError(w)
				return
			}

			user, err := userSvc.GetDomainUser(r.Context(), session.UserID)
			if err != nil {
				if errors.Is(err, users.ErrUserNotFound) {
					// пользователь удален, сессия больше не нужна
					_ = sessionSvc.Revoke(r.Context(), token)
					handlers.RespondUnauthorized(w, msgInvalidSession)
					return
				}
				logger.Error("Auth: failed to load user id=%d: %v", session.UserID, err)
				handlers.RespondInternalError(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user, token)))
		})
	}
}

// RequireAdmin пропускает только администратора. Ставится после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUser(r.Context())
		if !ok {
			handlers.RespondUnauthorized(w, msgInvalidSession)
			return
		}
		if !user.IsAdmin() {
			handlers.RespondForbidden(w, msgAdminOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUser извлекает пользователя из контекста
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok && user != nil
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	user, ok := GetUser(ctx)
	if !ok {
		return 0, false
	}
	return user.ID, true
}

// GetToken извлекает токен сессии из контекста
func GetToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// WithUser кладет пользователя и токен в контекст (используется и в тестах обработчиков)
func WithUser(ctx context.Context, user *domain.User, token string) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, tokenKey, token)
}

func extractToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || scheme != "Bearer" {
		return ""
	}
	return strings.TrimSpace(token)
}
