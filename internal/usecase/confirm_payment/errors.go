package confirm_payment

import "errors"

var (
	// ErrReconciliationMiss ни одна ожидающая оплаты запись не подошла под ключи уведомления
	ErrReconciliationMiss = errors.New("confirm_payment: no pending record matched")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
