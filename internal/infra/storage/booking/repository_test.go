package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/infra/storage/storagetest"
	"github.com/evilazio/barbershop-booking/pkg/dbmetrics"
	"github.com/evilazio/barbershop-booking/pkg/ptr"
	"github.com/evilazio/barbershop-booking/pkg/txmanager"
	"github.com/evilazio/barbershop-booking/pkg/types"
)

var (
	testDate = time.Date(2026, 10, 20, 0, 0, 0, 0, time.UTC)
	testNow  = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
)

func newPendingBooking(userID int64, start string, expiresAt time.Time) *domain.Booking {
	return &domain.Booking{
		UserID:          userID,
		Username:        "joao",
		DisplayName:     "Joao",
		Phone:           "+55 11 90000-0000",
		Service:         "Corte social",
		ServiceKey:      "corte_social",
		DurationMinutes: 60,
		BookingDate:     testDate,
		StartTime:       types.TimeString(start),
		Status:          domain.StatusPendingPayment,
		Payment: domain.Payment{
			Method:      domain.PaymentMethodPix,
			Amount:      45,
			PaymentCode: "EVLZ-" + start,
			ExpiresAt:   ptr.Ptr(expiresAt),
		},
	}
}

func setup(t *testing.T) (*Repository, *txmanager.TransactionManager, int64) {
	t.Helper()

	db := storagetest.NewPostgres(t)
	wrapped := dbmetrics.Wrap(db, nil, "test")
	userID := storagetest.CreateUser(t, db, "joao")

	return NewRepository(wrapped), txmanager.NewTransactionManager(wrapped), userID
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo, _, userID := setup(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPendingBooking(userID, "10:00", testNow.Add(20*time.Minute)))
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:00"), got.StartTime)
	assert.Equal(t, "2026-10-20", got.BookingDate.Format(domain.DateFormat))
	assert.Equal(t, domain.StatusPendingPayment, got.Status)
	assert.InDelta(t, 45.0, got.Payment.Amount, 0.001)
	assert.Nil(t, got.PaidAt)
	assert.Nil(t, got.CancelledBy)

	_, err = repo.GetByID(ctx, created.ID+100)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_SecondActiveBookingForSlotIsRejected(t *testing.T) {
	repo, _, userID := setup(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newPendingBooking(userID, "11:00", testNow.Add(time.Hour)))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newPendingBooking(userID, "11:00", testNow.Add(time.Hour)))
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestRepository_ConcurrentReservationsOfSameSlot(t *testing.T) {
	repo, tx, userID := setup(t)
	ctx := context.Background()

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		taken     int
	)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := tx.Do(ctx, func(ctx context.Context) error {
				if _, err := repo.ExpireStaleSlot(ctx, testDate, "14:00", testNow); err != nil {
					return err
				}
				_, err := repo.Create(ctx, newPendingBooking(userID, "14:00", testNow.Add(20*time.Minute)))
				return err
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, ErrSlotTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, taken)
}

func TestRepository_ExpiredPendingFreesSlot(t *testing.T) {
	repo, _, userID := setup(t)
	ctx := context.Background()

	stale, err := repo.Create(ctx, newPendingBooking(userID, "15:00", testNow.Add(-time.Minute)))
	require.NoError(t, err)

	active, err := repo.GetActiveByDate(ctx, testDate, testNow)
	require.NoError(t, err)
	assert.Empty(t, active)

	n, err := repo.ExpireStaleSlot(ctx, testDate, "15:00", testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := repo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, got.Status)
	require.NotNil(t, got.CancelledBy)
	assert.Equal(t, domain.CancelledBySystem, *got.CancelledBy)
	require.NotNil(t, got.CancellationReason)
	assert.Equal(t, domain.ReasonPaymentTimeout, *got.CancellationReason)

	_, err = repo.Create(ctx, newPendingBooking(userID, "15:00", testNow.Add(20*time.Minute)))
	assert.NoError(t, err)
}

func TestRepository_ExpirePending(t *testing.T) {
	repo, _, userID := setup(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, newPendingBooking(userID, "08:00", testNow.Add(-time.Minute)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPendingBooking(userID, "09:00", testNow.Add(-time.Second)))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newPendingBooking(userID, "10:00", testNow.Add(time.Minute)))
	require.NoError(t, err)

	n, err := repo.ExpirePending(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.ExpirePending(ctx, testNow)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_ConfirmTwiceFails(t *testing.T) {
	repo, tx, userID := setup(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPendingBooking(userID, "16:00", testNow.Add(20*time.Minute)))
	require.NoError(t, err)

	confirm := func() error {
		return tx.Do(ctx, func(ctx context.Context) error {
			found, err := repo.FindPendingByPaymentCode(ctx, "EVLZ-16:00", testNow)
			if err != nil {
				return err
			}
			return repo.Confirm(ctx, found.ID, testNow, testNow)
		})
	}

	require.NoError(t, confirm())
	assert.ErrorIs(t, confirm(), ErrBookingNotFound)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	require.NotNil(t, got.PaidAt)
}

func TestRepository_FindPendingLookups(t *testing.T) {
	repo, _, userID := setup(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPendingBooking(userID, "17:00", testNow.Add(20*time.Minute)))
	require.NoError(t, err)

	payment := created.Payment
	payment.Provider = "mercadopago"
	payment.ProviderPaymentID = "123456"
	payment.ExternalReference = "booking:1:EVLZ-17:00"
	require.NoError(t, repo.UpdatePayment(ctx, created.ID, payment, testNow))

	byProvider, err := repo.FindPendingByProviderPaymentID(ctx, "123456", testNow)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byProvider.ID)

	byRef, err := repo.FindPendingByExternalReference(ctx, "booking:1:EVLZ-17:00", testNow)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byRef.ID)

	byID, err := repo.FindPendingByID(ctx, created.ID, testNow)
	require.NoError(t, err)
	assert.Equal(t, "mercadopago", byID.Payment.Provider)

	// окно оплаты закрыто
	_, err = repo.FindPendingByID(ctx, created.ID, testNow.Add(time.Hour))
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_Cancel(t *testing.T) {
	repo, _, userID := setup(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPendingBooking(userID, "18:00", testNow.Add(20*time.Minute)))
	require.NoError(t, err)

	require.NoError(t, repo.Cancel(ctx, created.ID, "admin", "cliente desistiu", testNow))
	assert.ErrorIs(t, repo.Cancel(ctx, created.ID, "admin", "", testNow), ErrCannotCancel)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, got.Status)
	assert.Equal(t, "cliente desistiu", *got.CancellationReason)

	// отмененная запись не попадает в фильтр активных
	userBookings, err := repo.List(ctx, domain.BookingsFilter{
		UserID:   ptr.Ptr(userID),
		Statuses: domain.ActiveStatuses,
	})
	require.NoError(t, err)
	assert.Empty(t, userBookings)
}

func TestRepository_FindConfirmedByKeys(t *testing.T) {
	repo, _, userID := setup(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, newPendingBooking(userID, "19:00", testNow.Add(20*time.Minute)))
	require.NoError(t, err)

	keys := domain.PaymentKeys{PaymentCodes: []string{"other", created.Payment.PaymentCode}}

	// пока запись ожидает оплаты, подтвержденной нет
	_, err = repo.FindConfirmedByKeys(ctx, keys)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	require.NoError(t, repo.Confirm(ctx, created.ID, testNow, testNow))

	got, err := repo.FindConfirmedByKeys(ctx, keys)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	byID, err := repo.FindConfirmedByKeys(ctx, domain.PaymentKeys{IDs: []int64{created.ID}, ProviderPaymentID: "unknown"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, byID.ID)

	_, err = repo.FindConfirmedByKeys(ctx, domain.PaymentKeys{})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
