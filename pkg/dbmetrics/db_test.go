package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationOf(t *testing.T) {
	tests := map[string]string{
		"SELECT id FROM bookings":              "select",
		"  insert into bookings (id) VALUES":   "insert",
		"UPDATE bookings SET status = $1":      "update",
		"DELETE FROM sessions":                 "delete",
		"WITH x AS (SELECT 1) SELECT * FROM x": "with",
		"BEGIN":                                "other",
	}

	for query, want := range tests {
		assert.Equal(t, want, operationOf(query), query)
	}
}

type fakeTx struct {
	DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestGetExecutor_PrefersTransaction(t *testing.T) {
	db := &DB{}
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	tx := &fakeTx{}
	txCtx := WithTx(ctx, tx)

	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}
