package model

import (
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/timerange"
)

// LessonStatus состояние занятия относительно текущего времени
type LessonStatus string

const (
	LessonNotTakenPlace LessonStatus = "not taken place"
	LessonInProgress    LessonStatus = "in progress"
	LessonTookPlace     LessonStatus = "took place"
)

// MaxLessonTitleLength максимальная длина темы занятия в символах
const MaxLessonTitleLength = 250

type Lesson struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title"`
	Absence   bool      `json:"absence"`
	CreatedAt time.Time `json:"created_at"`
}

// Status вычисляет статус занятия длиной length на момент now
func (l *Lesson) Status(now time.Time, length time.Duration) LessonStatus {
	r := timerange.FromStartAndDuration(l.Date, length)
	switch {
	case now.Before(r.Start):
		return LessonNotTakenPlace
	case r.Contains(now):
		return LessonInProgress
	default:
		return LessonTookPlace
	}
}
