package payments

import "errors"

var (
	// ErrProviderUnavailable возвращается при любой ошибке провайдера при создании платежа
	ErrProviderUnavailable = errors.New("payments: provider unavailable")

	// ErrPaymentNotFound возвращается, когда провайдер не знает платеж
	ErrPaymentNotFound = errors.New("payments: payment not found")

	// ErrNotSupported возвращается, когда провайдер не поддерживает операцию
	ErrNotSupported = errors.New("payments: operation not supported by provider")

	// ErrInvalidExternalReference возвращается при разборе некорректной внешней ссылки
	ErrInvalidExternalReference = errors.New("payments: invalid external reference")
)
