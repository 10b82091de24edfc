package model

import (
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/timerange"
)

// Subscription долгосрочная связь учителя и студента по предмету
type Subscription struct {
	ID        int64     `json:"id"`
	TutorID   int64     `json:"tutor_id"`
	StudentID int64     `json:"student_id"`
	SubjectID int64     `json:"subject_id"`
	StartDate time.Time `json:"start_date"`
}

// IsParticipant проверяет что пользователь участник подписки
func (s *Subscription) IsParticipant(userID int64) bool {
	return s.TutorID == userID || s.StudentID == userID
}

// HourBlock купленный пакет часов внутри подписки
type HourBlock struct {
	ID             int64     `json:"id"`
	SubscriptionID int64     `json:"subscription_id"`
	ServiceID      int64     `json:"service_id"`
	PurchaseDate   time.Time `json:"purchase_date"`
}

// HourBlockUsage пакет вместе с данными услуги и числом использованных часов
type HourBlockUsage struct {
	Block         HourBlock `json:"block"`
	TutorID       int64     `json:"tutor_id"`
	NumberOfHours int       `json:"number_of_hours"`
	SessionLength int       `json:"session_length"`
	Used          int       `json:"used"`
}

// Remaining число свободных часов в пакете
func (u HourBlockUsage) Remaining() int {
	if u.Used >= u.NumberOfHours {
		return 0
	}
	return u.NumberOfHours - u.Used
}

// Appointment часть пакета, израсходованная на конкретное занятие
type Appointment struct {
	ID          int64 `json:"id"`
	HourBlockID int64 `json:"hour_block_id"`
	LessonID    int64 `json:"lesson_id"`

	// Заполняются из пакета и занятия
	SubscriptionID int64     `json:"subscription_id"`
	LessonDate     time.Time `json:"lesson_date"`
	SessionLength  int       `json:"session_length"`

	// Для отображения (может быть nil)
	Lesson *Lesson `json:"lesson,omitempty"`
}

// TimeRange интервал занятия
func (a *Appointment) TimeRange() timerange.TimeRange {
	return timerange.FromStartAndDuration(a.LessonDate, time.Duration(a.SessionLength)*time.Minute)
}
