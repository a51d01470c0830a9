package expiration

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	KindBooking      = "booking"
	KindPlanPurchase = "plan_purchase"
)

// Result количество записей, переведенных в expired за один проход
type Result struct {
	Bookings      int64
	PlanPurchases int64
}

// Service закрывает неоплаченные бронирования и покупки планов после окна оплаты
type Service struct {
	bookings     PendingExpirer
	purchases    PendingExpirer
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewService metrics может быть nil
func NewService(
	bookings PendingExpirer,
	purchases PendingExpirer,
	metrics MetricsRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookings:     bookings,
		purchases:    purchases,
		metrics:      metrics,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// SweepExpired выполняет один проход. Ошибка одной таблицы не мешает обработать другую
func (s *Service) SweepExpired(ctx context.Context) (Result, error) {
	now := s.timeProvider.Now()

	var (
		result Result
		errs   []error
	)

	n, err := s.bookings.ExpirePending(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("bookings: %v", err))
	} else {
		result.Bookings = n
		s.record(KindBooking, n)
	}

	n, err = s.purchases.ExpirePending(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("plan purchases: %v", err))
	} else {
		result.PlanPurchases = n
		s.record(KindPlanPurchase, n)
	}

	if len(errs) > 0 {
		return result, fmt.Errorf("%w: %v", ErrSweepFailed, errors.Join(errs...))
	}

	if result.Bookings > 0 || result.PlanPurchases > 0 {
		s.logger.Info("SweepExpired: expired bookings=%d plan_purchases=%d", result.Bookings, result.PlanPurchases)
	}

	return result, nil
}

// Run запускает периодическую очистку до отмены ctx
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("Run: expiration sweeper started, interval=%s", interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Run: expiration sweeper stopped")
			return
		case <-ticker.C:
			if _, err := s.SweepExpired(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error("Run: %v", err)
			}
		}
	}
}

func (s *Service) record(kind string, n int64) {
	if s.metrics != nil {
		s.metrics.RecordsExpired(kind, n)
	}
}
