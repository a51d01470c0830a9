package planpurchase

import "errors"

var (
	// ErrPurchaseNotFound возвращается, когда покупка плана не найдена
	ErrPurchaseNotFound = errors.New("planpurchase.repository: purchase not found")

	// ErrNotPending возвращается при подтверждении покупки, которая уже не ожидает оплаты
	ErrNotPending = errors.New("planpurchase.repository: purchase is not pending payment")

	ErrBuildQuery = errors.New("planpurchase.repository: failed to build query")
	ErrExecQuery  = errors.New("planpurchase.repository: failed to execute query")
	ErrScanRow    = errors.New("planpurchase.repository: failed to scan row")
)
