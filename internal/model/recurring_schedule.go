package model

import (
	"time"

	"github.com/google/uuid"
)

// RecurringAvailability шаблон еженедельного слота
type RecurringAvailability struct {
	ID          int64     `json:"id"`
	GroupID     uuid.UUID `json:"group_id"` // идентификатор группы связанных шаблонов
	TutorID     int64     `json:"tutor_id"`
	ServiceID   int64     `json:"service_id"`
	Weekday     int       `json:"weekday"`      // 0 = Sunday, 6 = Saturday
	StartHour   int       `json:"start_hour"`   // 0-23
	StartMinute int       `json:"start_minute"` // 0-59
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NextOccurrences возвращает начала слотов по шаблону в интервале [from, from+weeks).
// Время шаблона задано в UTC.
func (r *RecurringAvailability) NextOccurrences(from time.Time, weeks int) []time.Time {
	from = from.UTC()
	day := time.Date(from.Year(), from.Month(), from.Day(), r.StartHour, r.StartMinute, 0, 0, time.UTC)
	offset := (r.Weekday - int(day.Weekday()) + 7) % 7
	first := day.AddDate(0, 0, offset)

	occurrences := make([]time.Time, 0, weeks)
	for i := 0; i < weeks; i++ {
		occurrences = append(occurrences, first.AddDate(0, 0, 7*i))
	}
	return occurrences
}
