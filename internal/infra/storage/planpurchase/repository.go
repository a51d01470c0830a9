package planpurchase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/pkg/dbmetrics"
	"github.com/evilazio/barbershop-booking/pkg/psqlbuilder"
)

const tableName = "plan_purchases"

var columns = []string{
	"id",
	"user_id",
	"plan_type",
	"preferred_cut",
	"amount",
	"status",
	"payment_provider",
	"provider_payment_id",
	"external_reference",
	"pix_key",
	"payment_code",
	"qr_text",
	"qr_image_url",
	"expires_at",
	"paid_at",
	"created_at",
	"updated_at",
}

// Repository хранилище покупок планов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет покупку в статусе pending_payment
func (r *Repository) Create(ctx context.Context, purchase *domain.PlanPurchase) (*domain.PlanPurchase, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"user_id",
			"plan_type",
			"preferred_cut",
			"amount",
			"status",
			"payment_provider",
			"provider_payment_id",
			"external_reference",
			"pix_key",
			"payment_code",
			"qr_text",
			"qr_image_url",
			"expires_at",
		).
		Values(
			purchase.UserID,
			purchase.PlanType,
			purchase.PreferredCut,
			purchase.Amount,
			purchase.Status,
			purchase.Payment.Provider,
			purchase.Payment.ProviderPaymentID,
			purchase.Payment.ExternalReference,
			purchase.Payment.PixKey,
			purchase.Payment.PaymentCode,
			purchase.Payment.QRText,
			purchase.Payment.QRImageURL,
			purchase.Payment.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&purchase.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	purchase.CreatedAt = createdAt.Time
	purchase.UpdatedAt = updatedAt.Time

	return purchase, nil
}

// GetByID получает покупку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PlanPurchase, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	purchase, err := scanPurchase(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan purchase: %v", ErrScanRow, err)
	}

	return purchase, nil
}

// UpdatePayment сохраняет PIX дескриптор покупки
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

	return r.execOne(ctx, executor, "UpdatePayment", query, args, ErrPurchaseNotFound)
}

// Confirm подтверждает оплату покупки в статусе pending_payment
func (r *Repository) Confirm(ctx context.Context, id int64, paidAt time.Time, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.PurchaseConfirmed).
		Set("paid_at", paidAt).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.PurchasePendingPayment}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "Confirm", query, args, ErrNotPending)
}

// ExpirePending переводит просроченные покупки в expired
func (r *Repository) ExpirePending(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.PurchaseExpired).
		Set("updated_at", now).
		Where(squirrel.Eq{"status": domain.PurchasePendingPayment}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - execute update: %v", ErrExecQuery, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpirePending - get rows affected: %v", ErrExecQuery, err)
	}

	return n, nil
}

// FindPendingByID ищет покупку, которую еще можно оплатить (FOR UPDATE в транзакции)
func (r *Repository) FindPendingByID(ctx context.Context, id int64, now time.Time) (*domain.PlanPurchase, error) {
	return r.findPending(ctx, "FindPendingByID", squirrel.Eq{"id": id}, now)
}

func (r *Repository) FindPendingByProviderPaymentID(ctx context.Context, providerPaymentID string, now time.Time) (*domain.PlanPurchase, error) {
	return r.findPending(ctx, "FindPendingByProviderPaymentID", squirrel.Eq{"provider_payment_id": providerPaymentID}, now)
}

func (r *Repository) FindPendingByExternalReference(ctx context.Context, ref string, now time.Time) (*domain.PlanPurchase, error) {
	return r.findPending(ctx, "FindPendingByExternalReference", squirrel.Eq{"external_reference": ref}, now)
}

func (r *Repository) FindPendingByPaymentCode(ctx context.Context, code string, now time.Time) (*domain.PlanPurchase, error) {
	return r.findPending(ctx, "FindPendingByPaymentCode", squirrel.Eq{"payment_code": code}, now)
}

func (r *Repository) findPending(ctx context.Context, op string, key squirrel.Eq, now time.Time) (*domain.PlanPurchase, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(key).
		Where(squirrel.Eq{"status": domain.PurchasePendingPayment}).
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

	purchase, err := scanPurchase(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan purchase: %v", ErrScanRow, op, err)
	}

	return purchase, nil
}

// FindConfirmedByKeys ищет уже подтвержденную покупку по любому из ключей уведомления.
// Используется, чтобы отличить повторную доставку от уведомления без записи
func (r *Repository) FindConfirmedByKeys(ctx context.Context, keys domain.PaymentKeys) (*domain.PlanPurchase, error) {
	if keys.IsEmpty() {
		return nil, ErrPurchaseNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(paymentKeysCondition(keys)).
		Where(squirrel.Eq{"status": domain.PurchaseConfirmed}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedByKeys - build select query: %v", ErrBuildQuery, err)
	}

	purchase, err := scanPurchase(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPurchaseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConfirmedByKeys - scan purchase: %v", ErrScanRow, err)
	}

	return purchase, nil
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

func scanPurchase(row *sql.Row) (*domain.PlanPurchase, error) {
	var (
		p                    domain.PlanPurchase
		expiresAt, paidAt    sql.NullTime
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.PlanType,
		&p.PreferredCut,
		&p.Amount,
		&p.Status,
		&p.Payment.Provider,
		&p.Payment.ProviderPaymentID,
		&p.Payment.ExternalReference,
		&p.Payment.PixKey,
		&p.Payment.PaymentCode,
		&p.Payment.QRText,
		&p.Payment.QRImageURL,
		&expiresAt,
		&paidAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Payment.Method = domain.PaymentMethodPix
	p.Payment.PlanType = p.PlanType
	p.Payment.Amount = p.Amount
	if expiresAt.Valid {
		p.Payment.ExpiresAt = &expiresAt.Time
	}
	if paidAt.Valid {
		p.PaidAt = &paidAt.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
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
