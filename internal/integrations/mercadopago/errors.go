package mercadopago

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден у провайдера
	ErrPaymentNotFound = errors.New("mercadopago client: payment not found")

	// ErrUnauthorized возвращается при невалидном access token
	ErrUnauthorized = errors.New("mercadopago client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("mercadopago client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("mercadopago client: invalid response")

	// ErrInvalidSignature возвращается, когда подпись уведомления не совпала
	ErrInvalidSignature = errors.New("mercadopago: invalid notification signature")
)
