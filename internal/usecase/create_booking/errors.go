package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrAdminCannotBook администратор не записывается на услуги
	ErrAdminCannotBook = errors.New("create_booking: admin cannot book")

	// ErrInvalidDay день вне [сегодня, конец месяца]
	ErrInvalidDay = errors.New("create_booking: invalid day")

	// ErrInvalidTime время не совпадает ни с одним слотом
	ErrInvalidTime = errors.New("create_booking: invalid time slot")

	// ErrMissingServiceOrPhone не указаны услуга или телефон
	ErrMissingServiceOrPhone = errors.New("create_booking: service and phone are required")

	// ErrInvalidService неизвестная услуга
	ErrInvalidService = errors.New("create_booking: invalid service")

	// ErrInvalidPaymentMethod неизвестный способ оплаты
	ErrInvalidPaymentMethod = errors.New("create_booking: invalid payment method")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrUserNotFound пользователь из сессии не найден
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrSlotTaken слот уже занят активной записью
	ErrSlotTaken = errors.New("create_booking: slot already taken")

	// ErrPlanUpgradeRequired план не покрывает услугу, подробности в PlanRefusalError
	ErrPlanUpgradeRequired = errors.New("create_booking: plan upgrade required")

	// ErrProviderUnavailable платежный провайдер не создал платеж
	ErrProviderUnavailable = errors.New("create_booking: payment provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// PlanRefusalError отказ в записи по плану с кодом причины
type PlanRefusalError struct {
	Reason string // COMMON_PLAN_EXHAUSTED | PLAN_NOT_COVERED
}

func (e *PlanRefusalError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPlanUpgradeRequired, e.Reason)
}

func (e *PlanRefusalError) Is(target error) bool {
	return target == ErrPlanUpgradeRequired
}
