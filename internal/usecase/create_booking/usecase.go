package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	bookingRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/booking"
	userRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/user"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
	"github.com/evilazio/barbershop-booking/pkg/ptr"
	"github.com/evilazio/barbershop-booking/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	userRepo     UserRepository
	ledger       PlanLedger
	gateway      PaymentGateway
	calendar     Calendar
	txManager    TransactionManager
	metrics      MetricsRecorder
	settings     Settings
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	userRepo UserRepository,
	ledger PlanLedger,
	gateway PaymentGateway,
	calendar Calendar,
	txManager TransactionManager,
	metrics MetricsRecorder,
	settings Settings,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		ledger:       ledger,
		gateway:      gateway,
		calendar:     calendar,
		txManager:    txManager,
		metrics:      metrics,
		settings:     settings,
		timeProvider: calendar,
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, day=%s, time=%s, service=%q, method=%s",
		req.UserID, req.Day, req.Time, req.Service, req.PaymentMethod)

	// 1. Администратор не записывается
	if req.Role == domain.RoleAdmin {
		uc.logger.Warn("CreateBooking: admin user=%d tried to book", req.UserID)
		return nil, ErrAdminCannotBook
	}

	// 2. Валидация входных данных
	valid, err := validateRequest(req, uc.calendar)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Дата и параметры услуги
	date, err := uc.calendar.DateForDay(valid.day)
	if err != nil {
		return nil, ErrInvalidDay
	}
	service, err := calendar.ServiceByKey(valid.serviceKey)
	if err != nil {
		return nil, ErrInvalidService
	}

	now := uc.timeProvider.Now()
	monthKey := uc.calendar.MonthKey(now)

	var created *domain.Booking

	// 4. Резервируем слот в транзакции
	err = uc.txManager.Do(ctx, func(ctx context.Context) error {
		// 4.1 Блокируем пользователя
		user, err := uc.userRepo.LockByID(ctx, req.UserID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("%w: failed to lock user: %v", ErrInternal, err)
		}
		if user.IsAdmin() {
			return ErrAdminCannotBook
		}

		// 4.2 Освобождаем слот от просроченной неоплаченной записи
		if _, err := uc.bookingRepo.ExpireStaleSlot(ctx, date, valid.time, now); err != nil {
			return fmt.Errorf("%w: failed to expire stale slot: %v", ErrInternal, err)
		}

		booking := &domain.Booking{
			UserID:          user.ID,
			Username:        user.Username,
			DisplayName:     user.NameForBooking(),
			Phone:           valid.phone,
			Service:         valid.service,
			ServiceKey:      service.Key,
			DurationMinutes: service.DurationMinutes,
			BookingDate:     date,
			StartTime:       types.TimeString(valid.time),
		}

		// 4.3 Создаем запись выбранным способом оплаты
		if valid.method == domain.PaymentMethodPlan {
			created, err = uc.reserveWithPlan(ctx, user, booking, monthKey, now)
		} else {
			created, err = uc.reserveWithPix(ctx, booking, service.Price, now)
		}
		return err
	})
	if err != nil {
		var refusal *PlanRefusalError
		switch {
		case errors.As(err, &refusal):
			uc.logger.Info("CreateBooking: user=%d plan refused: %s", req.UserID, refusal.Reason)
		case errors.Is(err, ErrSlotTaken):
			uc.logger.Warn("CreateBooking: slot %s %s already taken", date.Format(domain.DateFormat), valid.time)
		case errors.Is(err, ErrInternal), errors.Is(err, ErrProviderUnavailable):
			uc.logger.Error("CreateBooking: user=%d: %v", req.UserID, err)
		default:
			uc.logger.Warn("CreateBooking: user=%d: %v", req.UserID, err)
		}
		return nil, err
	}

	// 5. Метрики
	if uc.metrics != nil {
		uc.metrics.BookingCreated(string(created.Payment.Method))
	}

	uc.logger.Info("CreateBooking: booking id=%d created, status=%s", created.ID, created.Status)

	return toResponse(created), nil
}

// reserveWithPlan списывает лимит плана и создает сразу подтвержденную запись
func (uc *UseCase) reserveWithPlan(
	ctx context.Context,
	user *domain.User,
	booking *domain.Booking,
	monthKey string,
	now time.Time,
) (*domain.Booking, error) {
	// 1. Проверяем покрытие услуги планом
	eligibility := uc.ledger.EvaluateEligibility(user.Plan, booking.ServiceKey, monthKey)
	if !eligibility.IsCovered() {
		return nil, &PlanRefusalError{Reason: eligibility.RefusalReason()}
	}

	// 2. Списываем стрижку из лимита common плана
	planType := user.Plan.Effective(monthKey).Type
	if planType == domain.PlanCommon {
		plan := uc.ledger.ConsumeCommonCut(user.Plan, monthKey, now)
		if err := uc.userRepo.UpdatePlan(ctx, user.ID, plan); err != nil {
			return nil, fmt.Errorf("%w: failed to update plan usage: %v", ErrInternal, err)
		}
	}

	// 3. Создаем подтвержденную запись
	booking.Status = domain.StatusConfirmed
	booking.Payment = domain.Payment{
		Method:   domain.PaymentMethodPlan,
		PlanType: planType,
	}
	booking.PaidAt = ptr.Ptr(now)

	return uc.insert(ctx, booking)
}

// reserveWithPix создает запись в ожидании оплаты и платеж у провайдера
func (uc *UseCase) reserveWithPix(
	ctx context.Context,
	booking *domain.Booking,
	amount float64,
	now time.Time,
) (*domain.Booking, error) {
	// 1. Создаем запись с окном оплаты
	code := payments.NewPaymentCode(domain.PaymentCodePrefixBooking, now)
	booking.Status = domain.StatusPendingPayment
	booking.Payment = domain.Payment{
		Method:      domain.PaymentMethodPix,
		PaymentCode: code,
		Amount:      amount,
		ExpiresAt:   ptr.Ptr(now.Add(uc.settings.PendingWindow)),
	}

	created, err := uc.insert(ctx, booking)
	if err != nil {
		return nil, err
	}

	// 2. Создаем платеж у провайдера, ошибка откатывает запись
	ref := payments.ExternalReference{Type: payments.ReferenceBooking, ID: created.ID, Code: code}
	descriptor, err := uc.gateway.BuildPixDescriptor(ctx, amount, uc.settings.PixDescription, code, ref.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	// 3. Сохраняем данные платежа
	descriptor.ApplyTo(&created.Payment)
	if err := uc.bookingRepo.UpdatePayment(ctx, created.ID, created.Payment, now); err != nil {
		return nil, fmt.Errorf("%w: failed to save payment: %v", ErrInternal, err)
	}

	return created, nil
}

func (uc *UseCase) insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}
	return created, nil
}

func toResponse(b *domain.Booking) *Response {
	resp := &Response{
		BookingID:       b.ID,
		Day:             b.Day(),
		Time:            b.StartTime,
		Service:         b.Service,
		DurationMinutes: b.DurationMinutes,
		Status:          b.Status,
		Method:          b.Payment.Method,
		PlanType:        b.Payment.PlanType,
		CreatedAt:       b.CreatedAt,
	}

	if b.Payment.Method == domain.PaymentMethodPix {
		resp.Payment = &PaymentDetails{
			PixKey:      b.Payment.PixKey,
			PaymentCode: b.Payment.PaymentCode,
			QRText:      b.Payment.QRText,
			QRImageURL:  b.Payment.QRImageURL,
			Amount:      b.Payment.Amount,
			ExpiresAt:   ptr.Value(b.Payment.ExpiresAt),
		}
	}

	return resp
}
