package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/pkg/dbmetrics"
	"github.com/evilazio/barbershop-booking/pkg/psqlbuilder"
)

const (
	tableName = "users"

	usernameIndex     = "users_username_uidx"
	pqUniqueViolation = "23505"
)

var columns = []string{
	"id",
	"username",
	"display_name",
	"phone",
	"role",
	"password_hash",
	"plan_type",
	"plan_preferred_cut",
	"plan_month_key",
	"plan_common_cuts_used",
	"plan_updated_at",
	"created_at",
	"updated_at",
}

// Repository хранилище пользователей и их планов
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create регистрирует пользователя. Username приводится к нижнему регистру
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if user.Plan.Type == "" {
		user.Plan.Type = domain.PlanNone
	}
	user.Username = strings.ToLower(user.Username)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("username", "display_name", "phone", "role", "password_hash", "plan_type").
		Values(user.Username, user.DisplayName, user.Phone, user.Role, user.PasswordHash, user.Plan.Type).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUsernameViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return user, nil
}

// GetByID получает пользователя по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id}, false)
}

// LockByID получает пользователя с блокировкой строки.
// Вне транзакции работает как GetByID
func (r *Repository) LockByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.getOne(ctx, "LockByID", squirrel.Eq{"id": id}, true)
}

// GetByUsername ищет пользователя без учета регистра
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "GetByUsername",
		squirrel.Expr("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))), false)
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer, lock bool) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(where)

	if lock && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	user, err := scanUser(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan user: %v", ErrScanRow, op, err)
	}

	return user, nil
}

// UpdateProfile обновляет имя и телефон
func (r *Repository) UpdateProfile(ctx context.Context, id int64, displayName, phone string, now time.Time) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("display_name", displayName).
		Set("phone", phone).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateProfile - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdateProfile", query, args)
}

// UpdatePassword заменяет хеш пароля
func (r *Repository) UpdatePassword(ctx context.Context, id int64, passwordHash string, now time.Time) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("password_hash", passwordHash).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePassword - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdatePassword", query, args)
}

// UpdatePlan сохраняет состояние плана целиком (тип, любимый срез, счетчик месяца)
func (r *Repository) UpdatePlan(ctx context.Context, id int64, plan domain.Plan) error {
	query, args, err := psqlbuilder.Update(tableName).
		Set("plan_type", plan.Type).
		Set("plan_preferred_cut", plan.PreferredCut).
		Set("plan_month_key", plan.Usage.MonthKey).
		Set("plan_common_cuts_used", plan.Usage.CommonCutsUsed).
		Set("plan_updated_at", plan.UpdatedAt).
		Set("updated_at", plan.UpdatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePlan - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, "UpdatePlan", query, args)
}

// UpsertAdmin создает администратора или обновляет пароль и имя существующего
func (r *Repository) UpsertAdmin(ctx context.Context, username, displayName, passwordHash string) (*domain.User, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns("username", "display_name", "role", "password_hash").
		Values(strings.ToLower(username), displayName, domain.RoleAdmin, passwordHash).
		Suffix(`ON CONFLICT (LOWER(username)) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			role = EXCLUDED.role,
			password_hash = EXCLUDED.password_hash,
			updated_at = NOW()
			RETURNING id`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertAdmin - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("%w: UpsertAdmin - execute insert: %v", ErrExecQuery, err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) execOne(ctx context.Context, op, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		u             domain.User
		planUpdatedAt sql.NullTime
	)

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.DisplayName,
		&u.Phone,
		&u.Role,
		&u.PasswordHash,
		&u.Plan.Type,
		&u.Plan.PreferredCut,
		&u.Plan.Usage.MonthKey,
		&u.Plan.Usage.CommonCutsUsed,
		&planUpdatedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	u.Plan.UpdatedAt = planUpdatedAt.Time

	return &u, nil
}

func isUsernameViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return string(pqErr.Code) == pqUniqueViolation && pqErr.Constraint == usernameIndex
}
