package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/pkg/dbmetrics"
	"github.com/evilazio/barbershop-booking/pkg/psqlbuilder"
)

const (
	tableName = "bookings"

	activeSlotIndex   = "bookings_active_slot_uidx"
	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"user_id",
	"username",
	"display_name",
	"phone",
	"service",
	"service_key",
	"duration_minutes",
	"booking_date",
	"start_time",
	"status",
	"payment_method",
	"payment_plan_type",
	"payment_provider",
	"provider_payment_id",
	"external_reference",
	"pix_key",
	"payment_code",
	"qr_text",
	"qr_image_url",
	"amount",
	"expires_at",
	"paid_at",
	"cancelled_at",
	"cancelled_by",
	"cancellation_reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вторая активная запись на тот же слот отклоняется частичным уникальным индексом,
// в этом случае возвращается ErrSlotTaken
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"user_id",
			"username",
			"display_name",
			"phone",
			"service",
			"service_key",
			"duration_minutes",
			"booking_date",
			"start_time",
			"status",
			"payment_method",
			"payment_plan_type",
			"payment_provider",
			"provider_payment_id",
			"external_reference",
			"pix_key",
			"payment_code",
			"qr_text",
			"qr_image_url",
			"amount",
			"expires_at",
			"paid_at",
		).
		Values(
			booking.UserID,
			booking.Username,
			booking.DisplayName,
			booking.Phone,
			booking.Service,
			booking.ServiceKey,
			booking.DurationMinutes,
			booking.BookingDate.Format(domain.DateFormat),
			booking.StartTime,
			booking.Status,
			booking.Payment.Method,
			booking.Payment.PlanType,
			booking.Payment.Provider,
			booking.Payment.ProviderPaymentID,
			booking.Payment.ExternalReference,
			booking.Payment.PixKey,
			booking.Payment.PaymentCode,
			booking.Payment.QRText,
			booking.Payment.QRImageURL,
			booking.Payment.Amount,
			booking.Payment.ExpiresAt,
			booking.PaidAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isActiveSlotViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID.
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List возвращает бронирования по фильтру, новые даты первыми
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		OrderBy("booking_date DESC", "start_time DESC", "id DESC")

	// Фильтрация по пользователю (nil - все пользователи)
	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": filter.Date.Format(domain.DateFormat)})
	}

	if len(filter.Statuses) > 0 {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(filter.Statuses)})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByDate возвращает записи, занимающие слоты даты:
// подтвержденные и ожидающие оплаты с неистекшим окном
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time, now time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.Or{
			squirrel.Eq{"status": domain.StatusConfirmed},
			squirrel.And{
				squirrel.Eq{"status": domain.StatusPendingPayment},
				squirrel.Gt{"expires_at": now},
			},
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ExpireStaleSlot освобождает слот от просроченной pending записи перед новой вставкой
func (r *Repository) ExpireStaleSlot(ctx context.Context, date time.Time, startTime string, now time.Time) (int64, error) {
	return r.expire(ctx, "ExpireStaleSlot", now, squirrel.Eq{
		"booking_date": date.Format(domain.DateFormat),
		"start_time":   startTime,
	})
}

// ExpirePending переводит все просроченные pending записи в expired
func (r *Repository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	return r.expire(ctx, "ExpirePending", now, nil)
}

func (r *Repository) expire(ctx context.Context, op string, now time.Time, extra squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableName).
		Set("status", domain.StatusExpired).
		Set("cancelled_at", now).
		Set("cancelled_by", domain.CancelledBySystem).
		Set("cancellation_reason", domain.ReasonPaymentTimeout).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.LtOrEq{"expires_at": now})

	if extra != nil {
		updateBuilder = updateBuilder.Where(extra)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	return rowsAffected, nil
}

// UpdatePayment сохраняет платежные данные (дескриптор PIX) бронирования
func (r *Repository) UpdatePayment(ctx context.Context, id int64, payment domain.Payment, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("payment_provider", payment.Provider).
		Set("provider_payment_id", payment.ProviderPaymentID).
		Set("external_reference", payment.ExternalReference).
		Set("pix_key", payment.PixKey).
		Set("payment_code", payment.PaymentCode).
		Set("qr_text", payment.QRText).
		Set("qr_image_url", payment.QRImageURL).
		Set("expires_at", payment.ExpiresAt).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePayment - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdatePayment", query, args, ErrBookingNotFound)
}

// Cancel отменяет активное бронирование.
// Условие по статусу в самом UPDATE: запись в конечном статусе не меняется
func (r *Repository) Cancel(ctx context.Context, id int64, cancelledBy, reason string, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", now).
		Set("cancelled_by", cancelledBy).
		Set("cancellation_reason", reason).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Cancel", query, args, ErrCannotCancel)
}

// Confirm подтверждает оплату pending записи
func (r *Repository) Confirm(ctx context.Context, id int64, paidAt time.Time, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusConfirmed).
		Set("paid_at", paidAt).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Confirm", query, args, ErrNotPending)
}

// FindPendingByID ищет ожидающую оплаты запись с открытым окном оплаты.
// Внутри транзакции строка блокируется; конкурентная транзакция после ожидания
// блокировки перепроверяет условие и уже не находит подтвержденную запись
func (r *Repository) FindPendingByID(ctx context.Context, id int64, now time.Time) (*domain.Booking, error) {
	return r.findPending(ctx, "FindPendingByID", squirrel.Eq{"id": id}, now)
}

func (r *Repository) FindPendingByProviderPaymentID(ctx context.Context, providerPaymentID string, now time.Time) (*domain.Booking, error) {
	return r.findPending(ctx, "FindPendingByProviderPaymentID", squirrel.Eq{"provider_payment_id": providerPaymentID}, now)
}

func (r *Repository) FindPendingByExternalReference(ctx context.Context, ref string, now time.Time) (*domain.Booking, error) {
	return r.findPending(ctx, "FindPendingByExternalReference", squirrel.Eq{"external_reference": ref}, now)
}

func (r *Repository) FindPendingByPaymentCode(ctx context.Context, code string, now time.Time) (*domain.Booking, error) {
	return r.findPending(ctx, "FindPendingByPaymentCode", squirrel.Eq{"payment_code": code}, now)
}

func (r *Repository) findPending(ctx context.Context, op string, key squirrel.Eq, now time.Time) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(key).
		Where(squirrel.Eq{"status": domain.StatusPendingPayment}).
		Where(squirrel.Gt{"expires_at": now}).
		OrderBy("id ASC").
		Limit(1)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
	}

	return booking, nil
}

// FindConfirmedByKeys ищет уже подтвержденное бронирование по любому из ключей уведомления.
// Используется, чтобы отличить повторную доставку от уведомления без записи
func (r *Repository) FindConfirmedByKeys(ctx context.Context, keys domain.PaymentKeys) (*domain.Booking, error) {
	if keys.IsEmpty() {
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(paymentKeysCondition(keys)).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedByKeys - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedByKeys - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, errNoRows error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return errNoRows
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		b                    domain.Booking
		expiresAt, paidAt    sql.NullTime
		cancelledAt          sql.NullTime
		cancelledBy, reason  sql.NullString
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.Username,
		&b.DisplayName,
		&b.Phone,
		&b.Service,
		&b.ServiceKey,
		&b.DurationMinutes,
		&b.BookingDate,
		&b.StartTime,
		&b.Status,
		&b.Payment.Method,
		&b.Payment.PlanType,
		&b.Payment.Provider,
		&b.Payment.ProviderPaymentID,
		&b.Payment.ExternalReference,
		&b.Payment.PixKey,
		&b.Payment.PaymentCode,
		&b.Payment.QRText,
		&b.Payment.QRImageURL,
		&b.Payment.Amount,
		&expiresAt,
		&paidAt,
		&cancelledAt,
		&cancelledBy,
		&reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Payment.ExpiresAt = nullTimePtr(expiresAt)
	b.PaidAt = nullTimePtr(paidAt)
	b.CancelledAt = nullTimePtr(cancelledAt)
	b.CancelledBy = nullStringPtr(cancelledBy)
	b.CancellationReason = nullStringPtr(reason)
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func isActiveSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == activeSlotIndex
}

// paymentKeysCondition совпадение хотя бы по одному непустому ключу
func paymentKeysCondition(keys domain.PaymentKeys) squirrel.Or {
	var or squirrel.Or
	if len(keys.IDs) > 0 {
		or = append(or, squirrel.Eq{"id": keys.IDs})
	}
	if keys.ProviderPaymentID != "" {
		or = append(or, squirrel.Eq{"provider_payment_id": keys.ProviderPaymentID})
	}
	if keys.ExternalReference != "" {
		or = append(or, squirrel.Eq{"external_reference": keys.ExternalReference})
	}
	if len(keys.PaymentCodes) > 0 {
		or = append(or, squirrel.Eq{"payment_code": keys.PaymentCodes})
	}
	return or
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func nullStringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
