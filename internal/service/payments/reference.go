package payments

import (
	"fmt"
	"strconv"
	"strings"
)

// ReferenceType тип записи во внешней ссылке
type ReferenceType string

const (
	ReferenceBooking ReferenceType = "booking"
	ReferencePlan    ReferenceType = "plan"
)

// ExternalReference ссылка на запись, которую провайдер возвращает в уведомлениях.
// Формат: "booking:<id>:<code>" или "plan:<id>:<code>"
type ExternalReference struct {
	Type ReferenceType
	ID   int64
	Code string
}

func (r ExternalReference) String() string {
	return fmt.Sprintf("%s:%d:%s", r.Type, r.ID, r.Code)
}

// ParseExternalReference разбирает внешнюю ссылку
func ParseExternalReference(raw string) (ExternalReference, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 3)
	if len(parts) != 3 {
		return ExternalReference{}, fmt.Errorf("%w: %q", ErrInvalidExternalReference, raw)
	}

	refType := ReferenceType(parts[0])
	if refType != ReferenceBooking && refType != ReferencePlan {
		return ExternalReference{}, fmt.Errorf("%w: unknown type %q", ErrInvalidExternalReference, parts[0])
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id <= 0 {
		return ExternalReference{}, fmt.Errorf("%w: bad id in %q", ErrInvalidExternalReference, raw)
	}

	return ExternalReference{Type: refType, ID: id, Code: parts[2]}, nil
}
