package model

import (
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/timerange"
)

// Availability слот, который учитель открывает для записи
type Availability struct {
	ID        int64     `json:"id"`
	ServiceID int64     `json:"service_id"`
	Start     time.Time `json:"start"`
	CreatedAt time.Time `json:"created_at"`

	// Заполняются из связанной услуги
	TutorID       int64 `json:"tutor_id"`
	SubjectID     int64 `json:"subject_id"`
	SessionLength int   `json:"session_length"`
}

// End время окончания слота
func (a *Availability) End() time.Time {
	return a.Start.Add(time.Duration(a.SessionLength) * time.Minute)
}

// TimeRange интервал, занимаемый слотом
func (a *Availability) TimeRange() timerange.TimeRange {
	return timerange.New(a.Start, a.End())
}

// IsOutdated слот закончился к моменту now
func (a *Availability) IsOutdated(now time.Time) bool {
	return !a.End().After(now)
}
