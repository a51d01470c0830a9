// Package storagetest поднимает PostgreSQL в контейнере для интеграционных тестов репозиториев
package storagetest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/evilazio/barbershop-booking/internal/infra/storage/migrations"
)

// NewPostgres запускает контейнер, применяет миграции и возвращает пул.
// Тест пропускается с -short или без Docker
func NewPostgres(t *testing.T) *sql.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test skipped in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("barbershop"),
		postgres.WithUsername("barbershop"),
		postgres.WithPassword("barbershop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		if err := pgContainer.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, migrations.Up(db))

	return db
}

// CreateUser вставляет пользователя и возвращает его id
func CreateUser(t *testing.T, db *sql.DB, username string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(`INSERT INTO users (username, display_name, phone, password_hash)
		VALUES ($1, $2, $3, 'hash') RETURNING id`,
		username, "Cliente "+username, "+55 11 90000-0000").Scan(&id)
	require.NoError(t, err)
	return id
}
