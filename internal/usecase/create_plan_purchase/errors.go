package create_plan_purchase

import "errors"

var (
	// ErrAdminNoPlan администратору план не нужен
	ErrAdminNoPlan = errors.New("create_plan_purchase: admin does not need a plan")

	// ErrInvalidPlan неизвестный или непокупаемый тип плана
	ErrInvalidPlan = errors.New("create_plan_purchase: invalid plan type")

	// ErrInvalidPreferredCut предпочтительная услуга не является стрижкой
	ErrInvalidPreferredCut = errors.New("create_plan_purchase: preferred cut must be a haircut")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_plan_purchase: invalid input data")

	// ErrProviderUnavailable платежный провайдер не создал платеж
	ErrProviderUnavailable = errors.New("create_plan_purchase: payment provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_plan_purchase: internal error")
)
