package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/service"
)

// Форматы ввода даты и времени
const (
	DateTimeLayout = "02.01.2006 15:04"
	DateLayout     = "02.01.2006"
	TimeLayout     = "15:04"
)

var errUsage = errors.New("invalid command arguments")

// commandArgs возвращает аргументы команды без самой команды
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

// parseID разбирает положительный идентификатор
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad id %q", errUsage, s)
	}
	return id, nil
}

// parseInt разбирает целое число
func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: bad number %q", errUsage, s)
	}
	return n, nil
}

// parseDateTime разбирает дату и время вида "02.01.2006 15:04" в UTC
func parseDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, date+" "+clock, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q %q", errUsage, date, clock)
	}
	return t, nil
}

// parseDate разбирает дату вида "02.01.2006" в UTC
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", errUsage, s)
	}
	return t, nil
}

// parseWeekdays разбирает список дней недели "1,3,5" (0 = воскресенье)
func parseWeekdays(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	weekdays := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || d < 0 || d > 6 {
			return nil, fmt.Errorf("%w: bad weekday %q", errUsage, p)
		}
		weekdays = append(weekdays, d)
	}
	return weekdays, nil
}

// parseTimes разбирает список времён "10:00,18:30"
func parseTimes(s string) ([]service.TimeOfDay, error) {
	parts := strings.Split(s, ",")
	times := make([]service.TimeOfDay, 0, len(parts))
	for _, p := range parts {
		t, err := time.Parse(TimeLayout, strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("%w: bad time %q", errUsage, p)
		}
		times = append(times, service.TimeOfDay{Hour: t.Hour(), Minute: t.Minute()})
	}
	return times, nil
}

// parseAbsence разбирает отметку пропуска занятия
func parseAbsence(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "да":
		return true, nil
	case "no", "нет":
		return false, nil
	}
	return false, fmt.Errorf("%w: bad absence flag %q", errUsage, s)
}

var categoryKeys = map[string]model.Category{
	"languages": model.CategoryLanguages,
	"science":   model.CategoryScience,
	"maths":     model.CategoryMaths,
	"arts":      model.CategoryArts,
	"social":    model.CategorySocialSciences,
}

// parseCategory разбирает короткое имя категории
func parseCategory(s string) (model.Category, error) {
	c, ok := categoryKeys[strings.ToLower(s)]
	if !ok {
		return "", fmt.Errorf("%w: unknown category %q", errUsage, s)
	}
	return c, nil
}
