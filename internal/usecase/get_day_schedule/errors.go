package get_day_schedule

import "errors"

var (
	// ErrInvalidDay день вне [сегодня, конец месяца]
	ErrInvalidDay = errors.New("get_day_schedule: invalid day")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_schedule: internal error")
)
