package plans

import "errors"

var (
	// ErrInvalidPlan возвращается для плана, который нельзя купить
	ErrInvalidPlan = errors.New("plans: invalid plan type")
)
