package calendar

import "errors"

var (
	// ErrInvalidService возвращается для неизвестной услуги
	ErrInvalidService = errors.New("calendar: invalid service")

	// ErrInvalidDay возвращается, когда день вне текущего месяца или уже прошел
	ErrInvalidDay = errors.New("calendar: day is not bookable")
)
