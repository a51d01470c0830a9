package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/evilazio/barbershop-booking/internal/domain"
	"github.com/evilazio/barbershop-booking/pkg/types"
)

const (
	firstSlot   types.TimeString = "08:00"
	slotMinutes                  = 60
	slotsPerDay                  = 12
)

var dailySlots = func() []types.TimeString {
	slots := make([]types.TimeString, 0, slotsPerDay)
	for t, i := firstSlot, 0; i < slotsPerDay; i++ {
		slots = append(slots, t)
		next, err := t.AddMinutes(slotMinutes)
		if err != nil {
			break
		}
		t = next
	}
	return slots
}()

// Calendar календарь одного барбера: 12 часовых слотов 08:00-19:00,
// запись возможна только на оставшиеся дни текущего месяца
type Calendar struct {
	location     *time.Location
	timeProvider TimeProvider
}

// NewCalendar создает календарь в часовом поясе loc.
// timeProvider == nil означает системное время
func NewCalendar(loc *time.Location, timeProvider TimeProvider) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &Calendar{
		location:     loc,
		timeProvider: timeProvider,
	}
}

// Now текущее время в часовом поясе календаря
func (c *Calendar) Now() time.Time {
	return c.timeProvider.Now().In(c.location)
}

func (c *Calendar) Location() *time.Location {
	return c.location
}

// MonthKey ключ месяца "YYYY-MM" для момента t
func (c *Calendar) MonthKey(t time.Time) string {
	return t.In(c.location).Format(domain.MonthKeyFormat)
}

// CurrentMonthKey ключ текущего месяца
func (c *Calendar) CurrentMonthKey() string {
	return c.MonthKey(c.Now())
}

// NormalizeDay приводит "5" и "05" к "05"
func NormalizeDay(raw string) (string, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 31 {
		return "", false
	}
	return fmt.Sprintf("%02d", n), true
}

// DayIsBookable проверяет, что день лежит в [сегодня, последний день месяца]
func (c *Calendar) DayIsBookable(day string) bool {
	normalized, ok := NormalizeDay(day)
	if !ok {
		return false
	}
	n, _ := strconv.Atoi(normalized)

	now := c.Now()
	return n >= now.Day() && n <= daysInMonth(now)
}

// DateForDay возвращает дату (полночь в поясе календаря) для дня текущего месяца
func (c *Calendar) DateForDay(day string) (time.Time, error) {
	if !c.DayIsBookable(day) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDay, day)
	}
	normalized, _ := NormalizeDay(day)
	n, _ := strconv.Atoi(normalized)

	now := c.Now()
	return time.Date(now.Year(), now.Month(), n, 0, 0, 0, 0, c.location), nil
}

// DailySlots возвращает копию сетки слотов дня
func DailySlots() []types.TimeString {
	out := make([]types.TimeString, len(dailySlots))
	copy(out, dailySlots)
	return out
}

// IsValidSlot проверяет, что время совпадает с началом одного из слотов
func IsValidSlot(t string) bool {
	ts, err := types.NewTimeStringFromString(t)
	if err != nil {
		return false
	}
	for _, s := range dailySlots {
		if s == ts {
			return true
		}
	}
	return false
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
