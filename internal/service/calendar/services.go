package calendar

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Service услуга барбершопа
type Service struct {
	Key             string
	DisplayName     string
	DurationMinutes int
	Price           float64
	IsCut           bool // категория "corte", покрывается планом common
}

var catalog = []Service{
	{Key: "corte_social", DisplayName: "Corte social", DurationMinutes: 30, Price: 35.00, IsCut: true},
	{Key: "corte_tradicional", DisplayName: "Corte tradicional", DurationMinutes: 30, Price: 35.00, IsCut: true},
	{Key: "corte_degrade", DisplayName: "Corte degradê", DurationMinutes: 35, Price: 40.00, IsCut: true},
	{Key: "corte_navalhado", DisplayName: "Corte navalhado", DurationMinutes: 40, Price: 45.00, IsCut: true},
	{Key: "barba", DisplayName: "Barba", DurationMinutes: 15, Price: 25.00},
	{Key: "sobrancelha", DisplayName: "Sobrancelha", DurationMinutes: 10, Price: 15.00},
	{Key: "pezinho", DisplayName: "Pezinho", DurationMinutes: 20, Price: 15.00},
	{Key: "corte_barba", DisplayName: "Corte + barba", DurationMinutes: 45, Price: 55.00},
	{Key: "corte_barba_sobrancelha", DisplayName: "Corte + barba + sobrancelha", DurationMinutes: 50, Price: 65.00},
}

var (
	servicesByKey  = make(map[string]Service, len(catalog))
	servicesByName = make(map[string]string, len(catalog))
)

func init() {
	for _, s := range catalog {
		servicesByKey[s.Key] = s
		servicesByName[foldText(s.DisplayName)] = s.Key
	}
}

// Services возвращает копию каталога услуг
func Services() []Service {
	out := make([]Service, len(catalog))
	copy(out, catalog)
	return out
}

// NormalizeServiceKey приводит введенное название услуги к ключу каталога.
// Регистр, диакритика и лишние пробелы игнорируются, ключ каталога принимается как есть.
// Неизвестное название дает пустую строку.
func NormalizeServiceKey(text string) string {
	folded := foldText(text)
	if folded == "" {
		return ""
	}
	if key, ok := servicesByName[folded]; ok {
		return key
	}
	if _, ok := servicesByKey[folded]; ok {
		return folded
	}
	return ""
}

// ServiceByKey возвращает услугу по ключу
func ServiceByKey(key string) (Service, error) {
	s, ok := servicesByKey[key]
	if !ok {
		return Service{}, fmt.Errorf("%w: %q", ErrInvalidService, key)
	}
	return s, nil
}

func ServiceDuration(key string) (int, error) {
	s, err := ServiceByKey(key)
	if err != nil {
		return 0, err
	}
	return s.DurationMinutes, nil
}

func ServicePrice(key string) (float64, error) {
	s, err := ServiceByKey(key)
	if err != nil {
		return 0, err
	}
	return s.Price, nil
}

// IsCutService true для стрижек (без комбо)
func IsCutService(key string) bool {
	return servicesByKey[key].IsCut
}

// foldText: NFD, удаление диакритики (Mn), нижний регистр, схлопывание пробелов
func foldText(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, text)
	if err != nil {
		stripped = text
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}
