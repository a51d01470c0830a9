package expiration

import "errors"

// ErrSweepFailed возвращается, если не удалось обработать одну из таблиц
var ErrSweepFailed = errors.New("expiration.service: sweep failed")
