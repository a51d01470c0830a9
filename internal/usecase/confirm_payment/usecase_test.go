package confirm_payment

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evilazio/barbershop-booking/internal/domain"
	bookingRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/booking"
	purchaseRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/planpurchase"
	"github.com/evilazio/barbershop-booking/internal/infra/storage/storagetest"
	userRepo "github.com/evilazio/barbershop-booking/internal/infra/storage/user"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
	"github.com/evilazio/barbershop-booking/internal/service/plans"
	"github.com/evilazio/barbershop-booking/pkg/dbmetrics"
	"github.com/evilazio/barbershop-booking/pkg/logger"
	"github.com/evilazio/barbershop-booking/pkg/ptr"
	"github.com/evilazio/barbershop-booking/pkg/txmanager"
	"github.com/evilazio/barbershop-booking/pkg/types"
)

var testNow = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type metricsStub struct {
	mu       sync.Mutex
	outcomes []string
}

func (m *metricsStub) PaymentReconciled(target, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, target+":"+outcome)
}

type env struct {
	bookings  *bookingRepo.Repository
	purchases *purchaseRepo.Repository
	users     *userRepo.Repository
	metrics   *metricsStub
	uc        *UseCase
	userID    int64
}

func setup(t *testing.T) *env {
	t.Helper()

	db := storagetest.NewPostgres(t)
	wrapped := dbmetrics.Wrap(db, nil, "test")

	e := &env{
		bookings:  bookingRepo.NewRepository(wrapped),
		purchases: purchaseRepo.NewRepository(wrapped),
		users:     userRepo.NewRepository(wrapped),
		metrics:   &metricsStub{},
		userID:    storagetest.CreateUser(t, db, "joao"),
	}
	ledger := plans.NewLedger(plans.Settings{CommonMonthlyFreeCuts: 2, CommonMonthlyPrice: 39.9, PlusMonthlyPrice: 79.9})
	cal := calendar.NewCalendar(time.UTC, fixedTime{now: testNow})

	e.uc = NewUseCase(e.bookings, e.purchases, e.users, ledger, cal,
		txmanager.NewTransactionManager(wrapped), e.metrics, logger.Nop())
	return e
}

func (e *env) pendingBooking(t *testing.T, start, code string, expiresAt time.Time) *domain.Booking {
	t.Helper()

	b, err := e.bookings.Create(context.Background(), &domain.Booking{
		UserID:          e.userID,
		Username:        "joao",
		DisplayName:     "Joao",
		Phone:           "11999990000",
		Service:         "Corte social",
		ServiceKey:      "corte_social",
		DurationMinutes: 30,
		BookingDate:     time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString(start),
		Status:          domain.StatusPendingPayment,
		Payment: domain.Payment{
			Method:      domain.PaymentMethodPix,
			PaymentCode: code,
			Amount:      35,
			ExpiresAt:   ptr.Ptr(expiresAt),
		},
	})
	require.NoError(t, err)
	return b
}

func (e *env) pendingPurchase(t *testing.T, planType domain.PlanType, code string) *domain.PlanPurchase {
	t.Helper()

	p, err := e.purchases.Create(context.Background(), &domain.PlanPurchase{
		UserID:   e.userID,
		PlanType: planType,
		Amount:   79.9,
		Status:   domain.PurchasePendingPayment,
		Payment: domain.Payment{
			Method:      domain.PaymentMethodPix,
			PaymentCode: code,
			Amount:      79.9,
			ExpiresAt:   ptr.Ptr(testNow.Add(20 * time.Minute)),
		},
	})
	require.NoError(t, err)
	return p
}

func TestExecute_IgnoresNonPaidStatus(t *testing.T) {
	m := &metricsStub{}
	uc := NewUseCase(nil, nil, nil, nil, calendar.NewCalendar(time.UTC, fixedTime{now: testNow}), nil, m, logger.Nop())

	res, err := uc.Execute(context.Background(), Event{PaymentCode: "EVLZ1", Status: domain.PaymentStatusPending})
	require.NoError(t, err)
	assert.True(t, res.Ignored)
	assert.Equal(t, "status_pending", res.Reason)
	assert.Equal(t, []string{"none:ignored"}, m.outcomes)
}

func TestExecute_ConfirmsBookingOnce(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	b := e.pendingBooking(t, "10:00", "EVLZ100", testNow.Add(20*time.Minute))

	ev := Event{PaymentCode: "EVLZ100", Status: domain.PaymentStatusPaid}

	res, err := e.uc.Execute(ctx, ev)
	require.NoError(t, err)
	assert.Equal(t, TargetBooking, res.Type)
	assert.Equal(t, b.ID, res.ID)
	assert.Equal(t, "confirmed", res.Status)

	// повторное уведомление подтверждается без изменений
	again, err := e.uc.Execute(ctx, ev)
	require.NoError(t, err)
	assert.True(t, again.Ignored)
	assert.Equal(t, "already_confirmed", again.Reason)
	assert.Equal(t, TargetBooking, again.Type)
	assert.Equal(t, b.ID, again.ID)

	got, err := e.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(testNow))
	assert.Equal(t, []string{"booking:paid", "booking:duplicate"}, e.metrics.outcomes)
}

func TestExecute_UsesWebhookPaidAt(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	b := e.pendingBooking(t, "11:00", "EVLZ200", testNow.Add(20*time.Minute))
	paidAt := testNow.Add(-3 * time.Minute)

	_, err := e.uc.Execute(ctx, Event{BookingID: ptr.Ptr(b.ID), Status: domain.PaymentStatusPaid, PaidAt: ptr.Ptr(paidAt)})
	require.NoError(t, err)

	got, err := e.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(paidAt))
}

func TestExecute_ClosedWindowIsMiss(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	b := e.pendingBooking(t, "12:00", "EVLZ300", testNow.Add(-time.Second))

	_, err := e.uc.Execute(ctx, Event{PaymentCode: "EVLZ300", Status: domain.PaymentStatusPaid})
	assert.ErrorIs(t, err, ErrReconciliationMiss)

	got, err := e.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, got.Status)
}

func TestExecute_ExplicitIDWinsOverPaymentCode(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	first := e.pendingBooking(t, "13:00", "EVLZ400", testNow.Add(20*time.Minute))
	second := e.pendingBooking(t, "14:00", "EVLZ401", testNow.Add(20*time.Minute))

	res, err := e.uc.Execute(ctx, Event{
		BookingID:   ptr.Ptr(second.ID),
		PaymentCode: first.Payment.PaymentCode,
		Status:      domain.PaymentStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, second.ID, res.ID)

	got, err := e.bookings.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendingPayment, got.Status)
}

func TestExecute_ProviderPaymentIDAndReference(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	b := e.pendingBooking(t, "15:00", "EVLZ500", testNow.Add(20*time.Minute))

	payment := b.Payment
	payment.ProviderPaymentID = "mp-555"
	payment.ExternalReference = "booking:999999:EVLZ500"
	require.NoError(t, e.bookings.UpdatePayment(ctx, b.ID, payment, testNow))

	// id из ссылки не существует, срабатывает id платежа у провайдера
	res, err := e.uc.Execute(ctx, Event{
		ProviderPaymentID: "mp-555",
		ExternalReference: "booking:999999:EVLZ500",
		Status:            domain.PaymentStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, b.ID, res.ID)
}

func TestExecute_PlusPlanRoundTrip(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	p := e.pendingPurchase(t, domain.PlanPlus, "PLAN100")

	res, err := e.uc.Execute(ctx, Event{
		ExternalReference: fmt.Sprintf("plan:%d:PLAN100", p.ID),
		Status:            domain.PaymentStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, TargetPlanPurchase, res.Type)
	assert.Equal(t, p.ID, res.ID)

	user, err := e.users.GetByID(ctx, e.userID)
	require.NoError(t, err)
	assert.Equal(t, domain.PlanPlus, user.Plan.Type)
	assert.Equal(t, "2026-10", user.Plan.Usage.MonthKey)
	assert.Equal(t, 0, user.Plan.Usage.CommonCutsUsed)

	got, err := e.purchases.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PurchaseConfirmed, got.Status)

	again, err := e.uc.Execute(ctx, Event{PaymentCode: "PLAN100", Status: domain.PaymentStatusPaid})
	require.NoError(t, err)
	assert.True(t, again.Ignored)
	assert.Equal(t, "already_confirmed", again.Reason)
	assert.Equal(t, TargetPlanPurchase, again.Type)
	assert.Equal(t, p.ID, again.ID)
}

func TestExecute_NoKeysIsMiss(t *testing.T) {
	e := setup(t)

	_, err := e.uc.Execute(context.Background(), Event{Status: domain.PaymentStatusPaid})
	assert.ErrorIs(t, err, ErrReconciliationMiss)
}

func TestExecute_UnknownKeysStayMiss(t *testing.T) {
	e := setup(t)
	e.pendingBooking(t, "16:00", "EVLZ600", testNow.Add(20*time.Minute))

	_, err := e.uc.Execute(context.Background(), Event{PaymentCode: "EVLZ-unknown", Status: domain.PaymentStatusPaid})
	assert.ErrorIs(t, err, ErrReconciliationMiss)
}

func TestExecute_ConcurrentDeliveriesConfirmOnce(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	b := e.pendingBooking(t, "17:00", "EVLZ700", testNow.Add(20*time.Minute))

	const deliveries = 5
	ev := Event{PaymentCode: "EVLZ700", Status: domain.PaymentStatusPaid}

	var (
		wg      sync.WaitGroup
		results = make([]*Result, deliveries)
		errs    = make([]error, deliveries)
	)
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = e.uc.Execute(ctx, ev)
		}(i)
	}
	wg.Wait()

	confirmed, acknowledged := 0, 0
	for i := 0; i < deliveries; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, b.ID, results[i].ID)
		if results[i].Ignored {
			assert.Equal(t, "already_confirmed", results[i].Reason)
			acknowledged++
		} else {
			confirmed++
		}
	}
	assert.Equal(t, 1, confirmed)
	assert.Equal(t, deliveries-1, acknowledged)

	got, err := e.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
}
