package model

import "time"

type Booking struct {
	ID             int64     `json:"id"`
	AvailabilityID int64     `json:"availability_id"`
	StudentID      int64     `json:"student_id"`
	LessonID       int64     `json:"lesson_id"`
	CreateDate     time.Time `json:"create_date"`

	// Для отображения (может быть nil)
	Availability *Availability `json:"availability,omitempty"`
	Lesson       *Lesson       `json:"lesson,omitempty"`
}
