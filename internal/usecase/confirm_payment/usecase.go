package confirm_payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	bookingRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/booking"
	purchaseRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/planpurchase"
	"github.com/evilazio/barbershop-booking/internal/service/payments"
)

const (
	statusConfirmed = "confirmed"

	reasonAlreadyConfirmed = "already_confirmed"
)

// match найденная запись: ровно одно поле не nil
type match struct {
	booking  *domain.Booking
	purchase *domain.PlanPurchase
}

// lookup один ключ поиска из уведомления
type lookup struct {
	key  string
	find func(ctx context.Context, now time.Time) (*match, error)
}

// UseCase сопоставляет уведомление об оплате с ожидающей записью и подтверждает ее
type UseCase struct {
	bookingRepo  BookingRepository
	purchaseRepo PurchaseRepository
	userRepo     UserRepository
	activator    PlanActivator
	calendar     Calendar
	txManager    TransactionManager
	metrics      MetricsRecorder
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	purchaseRepo PurchaseRepository,
	userRepo UserRepository,
	activator PlanActivator,
	calendar Calendar,
	txManager TransactionManager,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		purchaseRepo: purchaseRepo,
		userRepo:     userRepo,
		activator:    activator,
		calendar:     calendar,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute применяет уведомление. Повторное уведомление по уже подтвержденной
// записи возвращает Ignored с причиной already_confirmed, ErrReconciliationMiss
// только когда ни одной записи с такими ключами нет
func (uc *UseCase) Execute(ctx context.Context, ev Event) (*Result, error) {
	uc.logger.Info("ConfirmPayment: status=%s, provider_payment_id=%q, external_reference=%q, payment_code=%q",
		ev.Status, ev.ProviderPaymentID, ev.ExternalReference, ev.PaymentCode)

	// 1. Неоплаченные статусы ничего не меняют
	if ev.Status != domain.PaymentStatusPaid {
		uc.record("none", "ignored")
		return &Result{Ignored: true, Reason: "status_" + string(ev.Status)}, nil
	}

	now := uc.calendar.Now()
	paidAt := now
	if ev.PaidAt != nil && !ev.PaidAt.IsZero() {
		paidAt = *ev.PaidAt
	}

	var result *Result

	// 2. Поиск и подтверждение в одной транзакции
	err := uc.txManager.Do(ctx, func(ctx context.Context) error {
		// 2.1 Ищем запись по ключам в порядке приоритета
		m, key, err := uc.findMatch(ctx, ev, now)
		if err != nil {
			return err
		}

		// 2.2 Подтверждаем найденную запись
		if m.booking != nil {
			result, err = uc.confirmBooking(ctx, m.booking, paidAt, now)
		} else {
			result, err = uc.confirmPurchase(ctx, m.purchase, paidAt, now)
		}
		if err != nil {
			return err
		}

		uc.logger.Info("ConfirmPayment: %s id=%d confirmed by %s", result.Type, result.ID, key)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrReconciliationMiss) {
			dup, dupErr := uc.findConfirmed(ctx, ev)
			if dupErr != nil {
				uc.logger.Error("ConfirmPayment: %v", dupErr)
				return nil, dupErr
			}
			if dup != nil {
				uc.logger.Info("ConfirmPayment: %s id=%d already confirmed, redelivery acknowledged", dup.Type, dup.ID)
				uc.record(string(dup.Type), "duplicate")
				return dup, nil
			}

			uc.logger.Warn("ConfirmPayment: no pending record for provider_payment_id=%q, external_reference=%q, payment_code=%q",
				ev.ProviderPaymentID, ev.ExternalReference, ev.PaymentCode)
			uc.record("none", "miss")
			return nil, err
		}
		uc.logger.Error("ConfirmPayment: %v", err)
		return nil, err
	}

	uc.record(string(result.Type), "paid")

	return result, nil
}

// findMatch перебирает классы ключей: явный id, id платежа у провайдера, код платежа
func (uc *UseCase) findMatch(ctx context.Context, ev Event, now time.Time) (*match, string, error) {
	for _, l := range uc.lookups(ev) {
		m, err := l.find(ctx, now)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) || errors.Is(err, purchaseRepo.ErrPurchaseNotFound) {
				continue
			}
			return nil, "", fmt.Errorf("%w: lookup by %s: %v", ErrInternal, l.key, err)
		}
		return m, l.key, nil
	}
	return nil, "", ErrReconciliationMiss
}

// findConfirmed ищет уже подтвержденную запись по тем же ключам без учета окна оплаты.
// nil без ошибки означает, что записи нет
func (uc *UseCase) findConfirmed(ctx context.Context, ev Event) (*Result, error) {
	bookingKeys, purchaseKeys := confirmedKeys(ev)

	b, err := uc.bookingRepo.FindConfirmedByKeys(ctx, bookingKeys)
	switch {
	case err == nil:
		return &Result{Ignored: true, Reason: reasonAlreadyConfirmed, Type: TargetBooking, ID: b.ID, Status: statusConfirmed}, nil
	case !errors.Is(err, bookingRepo.ErrBookingNotFound):
		return nil, fmt.Errorf("%w: lookup confirmed booking: %v", ErrInternal, err)
	}

	p, err := uc.purchaseRepo.FindConfirmedByKeys(ctx, purchaseKeys)
	switch {
	case err == nil:
		return &Result{Ignored: true, Reason: reasonAlreadyConfirmed, Type: TargetPlanPurchase, ID: p.ID, Status: statusConfirmed}, nil
	case !errors.Is(err, purchaseRepo.ErrPurchaseNotFound):
		return nil, fmt.Errorf("%w: lookup confirmed purchase: %v", ErrInternal, err)
	}

	return nil, nil
}

// confirmedKeys раскладывает ключи уведомления по таблицам: явные id относятся
// к своей таблице, остальные ключи общие
func confirmedKeys(ev Event) (bookingKeys, purchaseKeys domain.PaymentKeys) {
	shared := domain.PaymentKeys{
		ProviderPaymentID: ev.ProviderPaymentID,
		ExternalReference: ev.ExternalReference,
	}
	if ev.PaymentCode != "" {
		shared.PaymentCodes = append(shared.PaymentCodes, ev.PaymentCode)
	}

	ref, hasRef := parseReference(ev)
	if hasRef && ref.Code != "" && ref.Code != ev.PaymentCode {
		shared.PaymentCodes = append(shared.PaymentCodes, ref.Code)
	}

	bookingKeys, purchaseKeys = shared, shared
	if ev.BookingID != nil {
		bookingKeys.IDs = append(bookingKeys.IDs, *ev.BookingID)
	}
	if ev.PurchaseID != nil {
		purchaseKeys.IDs = append(purchaseKeys.IDs, *ev.PurchaseID)
	}
	if hasRef {
		if ref.Type == payments.ReferenceBooking {
			bookingKeys.IDs = append(bookingKeys.IDs, ref.ID)
		} else {
			purchaseKeys.IDs = append(purchaseKeys.IDs, ref.ID)
		}
	}
	return bookingKeys, purchaseKeys
}

func parseReference(ev Event) (payments.ExternalReference, bool) {
	if ev.ExternalReference == "" {
		return payments.ExternalReference{}, false
	}
	ref, err := payments.ParseExternalReference(ev.ExternalReference)
	if err != nil {
		return payments.ExternalReference{}, false
	}
	return ref, true
}

func (uc *UseCase) lookups(ev Event) []lookup {
	var out []lookup
	ref, hasRef := parseReference(ev)

	// 1. Явный id
	if ev.BookingID != nil {
		out = append(out, uc.bookingByID("booking_id", *ev.BookingID))
	}
	if ev.PurchaseID != nil {
		out = append(out, uc.purchaseByID("purchase_id", *ev.PurchaseID))
	}
	if hasRef {
		if ref.Type == payments.ReferenceBooking {
			out = append(out, uc.bookingByID("external_reference_id", ref.ID))
		} else {
			out = append(out, uc.purchaseByID("external_reference_id", ref.ID))
		}
	}

	// 2. Id платежа у провайдера, затем внешняя ссылка как есть
	if ev.ProviderPaymentID != "" {
		id := ev.ProviderPaymentID
		out = append(out, lookup{key: "provider_payment_id", find: func(ctx context.Context, now time.Time) (*match, error) {
			return uc.either(
				func() (*domain.Booking, error) { return uc.bookingRepo.FindPendingByProviderPaymentID(ctx, id, now) },
				func() (*domain.PlanPurchase, error) { return uc.purchaseRepo.FindPendingByProviderPaymentID(ctx, id, now) },
			)
		}})
	}
	if ev.ExternalReference != "" {
		raw := ev.ExternalReference
		out = append(out, lookup{key: "external_reference", find: func(ctx context.Context, now time.Time) (*match, error) {
			return uc.either(
				func() (*domain.Booking, error) { return uc.bookingRepo.FindPendingByExternalReference(ctx, raw, now) },
				func() (*domain.PlanPurchase, error) { return uc.purchaseRepo.FindPendingByExternalReference(ctx, raw, now) },
			)
		}})
	}

	// 3. Код платежа: явный, затем из внешней ссылки
	if ev.PaymentCode != "" {
		out = append(out, uc.byPaymentCode("payment_code", ev.PaymentCode))
	}
	if hasRef && ref.Code != "" && ref.Code != ev.PaymentCode {
		out = append(out, uc.byPaymentCode("external_reference_code", ref.Code))
	}

	return out
}

func (uc *UseCase) bookingByID(key string, id int64) lookup {
	return lookup{key: key, find: func(ctx context.Context, now time.Time) (*match, error) {
		b, err := uc.bookingRepo.FindPendingByID(ctx, id, now)
		if err != nil {
			return nil, err
		}
		return &match{booking: b}, nil
	}}
}

func (uc *UseCase) purchaseByID(key string, id int64) lookup {
	return lookup{key: key, find: func(ctx context.Context, now time.Time) (*match, error) {
		p, err := uc.purchaseRepo.FindPendingByID(ctx, id, now)
		if err != nil {
			return nil, err
		}
		return &match{purchase: p}, nil
	}}
}

func (uc *UseCase) byPaymentCode(key, code string) lookup {
	return lookup{key: key, find: func(ctx context.Context, now time.Time) (*match, error) {
		return uc.either(
			func() (*domain.Booking, error) { return uc.bookingRepo.FindPendingByPaymentCode(ctx, code, now) },
			func() (*domain.PlanPurchase, error) { return uc.purchaseRepo.FindPendingByPaymentCode(ctx, code, now) },
		)
	}}
}

// either ищет сначала среди бронирований, затем среди покупок
func (uc *UseCase) either(
	findBooking func() (*domain.Booking, error),
	findPurchase func() (*domain.PlanPurchase, error),
) (*match, error) {
	b, err := findBooking()
	if err == nil {
		return &match{booking: b}, nil
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return nil, err
	}

	p, err := findPurchase()
	if err != nil {
		return nil, err
	}
	return &match{purchase: p}, nil
}

func (uc *UseCase) confirmBooking(ctx context.Context, b *domain.Booking, paidAt, now time.Time) (*Result, error) {
	if err := uc.bookingRepo.Confirm(ctx, b.ID, paidAt, now); err != nil {
		if errors.Is(err, bookingRepo.ErrNotPending) {
			return nil, ErrReconciliationMiss
		}
		return nil, fmt.Errorf("%w: failed to confirm booking id=%d: %v", ErrInternal, b.ID, err)
	}
	return &Result{Type: TargetBooking, ID: b.ID, Status: statusConfirmed}, nil
}

// confirmPurchase подтверждает покупку и активирует план пользователя
func (uc *UseCase) confirmPurchase(ctx context.Context, p *domain.PlanPurchase, paidAt, now time.Time) (*Result, error) {
	// 1. Подтверждаем покупку
	if err := uc.purchaseRepo.Confirm(ctx, p.ID, paidAt, now); err != nil {
		if errors.Is(err, purchaseRepo.ErrNotPending) {
			return nil, ErrReconciliationMiss
		}
		return nil, fmt.Errorf("%w: failed to confirm purchase id=%d: %v", ErrInternal, p.ID, err)
	}

	// 2. Блокируем пользователя
	user, err := uc.userRepo.LockByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to lock user id=%d: %v", ErrInternal, p.UserID, err)
	}

	// 3. Активируем план со сброшенным счетчиком
	plan := uc.activator.Activate(p.PlanType, p.PreferredCut, uc.calendar.MonthKey(now), now)
	if err := uc.userRepo.UpdatePlan(ctx, user.ID, plan); err != nil {
		return nil, fmt.Errorf("%w: failed to activate plan for user id=%d: %v", ErrInternal, user.ID, err)
	}

	uc.logger.Info("ConfirmPayment: plan %s activated for user id=%d", plan.Type, user.ID)

	return &Result{Type: TargetPlanPurchase, ID: p.ID, Status: statusConfirmed}, nil
}

func (uc *UseCase) record(target, outcome string) {
	if uc.metrics != nil {
		uc.metrics.PaymentReconciled(target, outcome)
	}
}
