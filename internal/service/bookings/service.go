package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/evilazio/barbershop-booking/internal/domain"
	bookingRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/booking"
	"github.com/evilazio/barbershop-booking/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// List возвращает бронирования пользователя, администратору все.
// Опционально фильтрует по статусу
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter := domain.BookingsFilter{}
	if !req.IsAdmin {
		userID := req.UserID
		filter.UserID = &userID
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Statuses = []domain.BookingStatus{status}
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d bookings for user=%d admin=%t", len(bookings), req.UserID, req.IsAdmin)
	return models.FromDomainBookingList(bookings), nil
}

// GetByID возвращает бронирование владельцу или администратору
func (s *Service) GetByID(ctx context.Context, id int64, userID int64, isAdmin bool) (*models.BookingResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !isAdmin && booking.UserID != userID {
		s.logger.Warn("GetByID: user=%d tried to read booking id=%d of user=%d", userID, id, booking.UserID)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// AdminCancel отменяет бронирование от имени администратора.
// Допустимо только из pending_payment или confirmed
func (s *Service) AdminCancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("AdminCancel: cancelling booking id=%d by admin=%s", bookingID, req.AdminUsername)

	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		reason = domain.ReasonCancelledByAdmin
	}
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason too long", ErrInvalidInput)
	}

	var cancelled *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем запись
		booking, err := s.bookingRepo.GetByID(txCtx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: AdminCancel - get booking: %v", ErrInternal, err)
		}

		// 2. Проверяем статус
		if !booking.CanBeCancelled() {
			s.logger.Warn("AdminCancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrNotCancellable
		}

		// 3. Условный UPDATE
		now := s.timeProvider.Now()
		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.AdminUsername, reason, now); err != nil {
			if errors.Is(err, bookingRepo.ErrCannotCancel) {
				return ErrNotCancellable
			}
			return fmt.Errorf("%w: AdminCancel - cancel: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusCancelled
		booking.CancelledAt = &now
		booking.CancelledBy = &req.AdminUsername
		booking.CancellationReason = &reason
		cancelled = booking
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("AdminCancel: failed to cancel booking id=%d: %v", bookingID, err)
		}
		return nil, err
	}

	s.logger.Info("AdminCancel: booking id=%d cancelled", bookingID)
	return models.FromDomainBooking(cancelled), nil
}
