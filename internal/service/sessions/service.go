package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service выдает и проверяет токены сессий со скользящим TTL
type Service struct {
	store        Store
	ttl          time.Duration
	timeProvider TimeProvider
	logger       Logger
}

func NewService(store Store, ttl time.Duration, timeProvider TimeProvider, logger Logger) *Service {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Service{
		store:        store,
		ttl:          ttl,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Create открывает новую сессию пользователя
func (s *Service) Create(ctx context.Context, userID int64, meta ClientMeta) (*Session, error) {
	now := s.timeProvider.Now()

	session := &Session{
		Token:      uuid.NewString(),
		UserID:     userID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
		UserAgent:  meta.UserAgent,
		RemoteAddr: meta.RemoteAddr,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("Create - save session: %w", err)
	}

	return session, nil
}

// Authenticate проверяет токен и продлевает сессию на ttl от текущего момента
func (s *Service) Authenticate(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	if session.IsExpired(now) {
		if err := s.store.Delete(ctx, token); err != nil {
			s.logger.Warn("Authenticate: failed to delete expired session user_id=%d: %v", session.UserID, err)
		}
		return nil, ErrSessionNotFound
	}

	session.ExpiresAt = now.Add(s.ttl)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("Authenticate - refresh session: %w", err)
	}

	return session, nil
}

// Revoke удаляет сессию (logout)
func (s *Service) Revoke(ctx context.Context, token string) error {
	return s.store.Delete(ctx, token)
}

// Sweep удаляет истекшие сессии
func (s *Service) Sweep(ctx context.Context) (int, error) {
	return s.store.DeleteExpired(ctx, s.timeProvider.Now())
}

// RunSweeper периодически чистит хранилище до отмены ctx
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := s.Sweep(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("RunSweeper: failed to sweep sessions: %v", err)
				continue
			}
			if removed > 0 {
				s.logger.Info("RunSweeper: removed %d expired sessions", removed)
			}
		}
	}
}
