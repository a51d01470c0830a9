package create_booking

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/internal/service/calendar"
)

// validatedRequest нормализованный запрос
type validatedRequest struct {
	day        string
	time       string
	service    string
	serviceKey string
	phone      string
	method     domain.PaymentMethod
}

// validateRequest валидирует входные данные запроса в порядке, в котором клиент видит ошибки
func validateRequest(req *Request, cal Calendar) (*validatedRequest, error) {
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	day, ok := calendar.NormalizeDay(req.Day)
	if !ok {
		return nil, ErrInvalidDay
	}
	if _, err := cal.DateForDay(day); err != nil {
		return nil, ErrInvalidDay
	}

	slot := strings.TrimSpace(req.Time)
	if !calendar.IsValidSlot(slot) {
		return nil, ErrInvalidTime
	}

	service := strings.TrimSpace(req.Service)
	phone := strings.TrimSpace(req.Phone)
	if service == "" || phone == "" {
		return nil, ErrMissingServiceOrPhone
	}
	if utf8.RuneCountInString(phone) > domain.MaxPhoneLength {
		return nil, fmt.Errorf("%w: phone too long", ErrInvalidInput)
	}

	serviceKey := calendar.NormalizeServiceKey(service)
	if serviceKey == "" {
		return nil, ErrInvalidService
	}

	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	return &validatedRequest{
		day:        day,
		time:       slot,
		service:    service,
		serviceKey: serviceKey,
		phone:      phone,
		method:     method,
	}, nil
}

// parsePaymentMethod "premium" синоним "plan", пусто означает pix
func parsePaymentMethod(raw string) (domain.PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(domain.PaymentMethodPix):
		return domain.PaymentMethodPix, nil
	case string(domain.PaymentMethodPlan), "premium":
		return domain.PaymentMethodPlan, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, raw)
	}
}
