package service

import (
	"strings"
	"testing"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLessonUpdateForBooking(t *testing.T) {
	f := newFixture(t)
	s := newBookingSetup(t, f)

	booking, err := f.bookings.Create(f.ctx, s.student.ID, s.av.ID)
	require.NoError(t, err)

	lesson, err := f.lessons.Update(f.ctx, s.tutor.ID, booking.LessonID, "  Quadratic equations ", true)
	require.NoError(t, err)
	assert.Equal(t, "Quadratic equations", lesson.Title)
	assert.True(t, lesson.Absence)

	stored := f.lesson(t, booking.LessonID)
	assert.Equal(t, "Quadratic equations", stored.Title)
	assert.True(t, stored.Absence)
	assert.Equal(t, s.av.Start, stored.Date)
}

func TestLessonUpdateForAppointment(t *testing.T) {
	f := newFixture(t)
	s := newHourSetup(t, f)

	appt, err := f.hours.Allocate(f.ctx, s.tutor.ID, s.sub.ID, at(12, 0))
	require.NoError(t, err)

	_, err = f.lessons.Update(f.ctx, s.tutor.ID, appt.LessonID, "Limits", false)
	require.NoError(t, err)
	assert.Equal(t, "Limits", f.lesson(t, appt.LessonID).Title)

	// Студент подписки не может менять занятие
	_, err = f.lessons.Update(f.ctx, s.student.ID, appt.LessonID, "Mine", false)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
}

func TestLessonUpdateRejections(t *testing.T) {
	f := newFixture(t)
	s := newBookingSetup(t, f)
	otherTutor := f.tutor(t)

	booking, err := f.bookings.Create(f.ctx, s.student.ID, s.av.ID)
	require.NoError(t, err)

	tests := []struct {
		name     string
		tutorID  int64
		lessonID int64
		title    string
		want     apperror.Kind
	}{
		{"title too long", s.tutor.ID, booking.LessonID, strings.Repeat("я", 251), apperror.KindValidation},
		{"unknown lesson", s.tutor.ID, 9999, "Algebra", apperror.KindNotFound},
		{"other tutor", otherTutor.ID, booking.LessonID, "Algebra", apperror.KindAuthorization},
		{"student", s.student.ID, booking.LessonID, "Algebra", apperror.KindAuthorization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.lessons.Update(f.ctx, tt.tutorID, tt.lessonID, tt.title, false)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperror.KindOf(err))
		})
	}

	assert.Empty(t, f.lesson(t, booking.LessonID).Title)

	// Ровно 250 символов допустимо
	_, err = f.lessons.Update(f.ctx, s.tutor.ID, booking.LessonID, strings.Repeat("я", 250), false)
	assert.NoError(t, err)
}
