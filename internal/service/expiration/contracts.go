package expiration

import (
	"context"
	"time"
)

// PendingExpirer переводит просроченные pending записи в expired
type PendingExpirer interface {
	ExpirePending(ctx context.Context, now time.Time) (int64, error)
}

// MetricsRecorder счетчик истекших записей
type MetricsRecorder interface {
	RecordsExpired(kind string, n int64)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
