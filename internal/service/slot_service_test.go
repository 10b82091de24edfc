package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotCreate(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)

	av, err := f.slots.Create(f.ctx, tutor.ID, service.ID, at(8, 0))
	require.NoError(t, err)

	assert.Equal(t, tutor.ID, av.TutorID)
	assert.Equal(t, at(9, 0), av.End())
	assert.False(t, f.slots.IsOutdated(av))
}

func TestSlotCreateRejections(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	other := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)
	f.slot(t, tutor.ID, service.ID, at(8, 0))

	tests := []struct {
		name      string
		tutorID   int64
		serviceID int64
		start     time.Time
		kind      apperror.Kind
		message   string
	}{
		{"in the past", tutor.ID, service.ID, now.Add(-time.Minute), apperror.KindState, apperror.MsgSlotInPast},
		{"zero start", tutor.ID, service.ID, time.Time{}, apperror.KindValidation, ""},
		{"overlapping", tutor.ID, service.ID, at(8, 30), apperror.KindConflict, apperror.MsgConflictingSlot},
		{"same start", tutor.ID, service.ID, at(8, 0), apperror.KindConflict, apperror.MsgConflictingSlot},
		{"ends inside", tutor.ID, service.ID, at(7, 30), apperror.KindConflict, apperror.MsgConflictingSlot},
		{"unknown service", tutor.ID, 999, at(12, 0), apperror.KindNotFound, ""},
		{"foreign service", other.ID, service.ID, at(12, 0), apperror.KindAuthorization, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.slots.Create(f.ctx, tt.tutorID, tt.serviceID, tt.start)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
			if tt.message != "" {
				assert.Equal(t, tt.message, apperror.MessageOf(err))
			}
		})
	}
}

func TestSlotCreateAdjacentAllowed(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)
	f.slot(t, tutor.ID, service.ID, at(8, 0))

	_, err := f.slots.Create(f.ctx, tutor.ID, service.ID, at(9, 0))
	require.NoError(t, err)

	_, err = f.slots.Create(f.ctx, tutor.ID, service.ID, at(7, 0))
	require.NoError(t, err)
}

func TestSlotOverlapIsTutorWide(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	other := f.tutor(t)
	algebra := f.subject(t, "Algebra")
	physics := f.subject(t, "Physics")

	algebraService := f.service(t, tutor.ID, algebra.ID, 1, 180)
	physicsService := f.service(t, tutor.ID, physics.ID, 1, 30)
	otherService := f.service(t, other.ID, physics.ID, 1, 60)

	f.slot(t, tutor.ID, algebraService.ID, at(8, 0))

	// Трёхчасовой слот с 08:00 перекрывает 10:30 по другой услуге того же учителя
	_, err := f.slots.Create(f.ctx, tutor.ID, physicsService.ID, at(10, 30))
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	_, err = f.slots.Create(f.ctx, tutor.ID, physicsService.ID, at(11, 0))
	require.NoError(t, err)

	// Другой учитель в то же время свободен
	_, err = f.slots.Create(f.ctx, other.ID, otherService.ID, at(8, 0))
	require.NoError(t, err)
}

func TestSlotIsOutdated(t *testing.T) {
	f := newFixture(t)
	av := &model.Availability{Start: time.Date(2023, 12, 12, 8, 0, 0, 0, time.UTC), SessionLength: 60}

	f.clock.Set(time.Date(2023, 12, 13, 7, 59, 0, 0, time.UTC))
	assert.True(t, f.slots.IsOutdated(av))

	f.clock.Set(time.Date(2023, 12, 12, 8, 59, 0, 0, time.UTC))
	assert.False(t, f.slots.IsOutdated(av))

	f.clock.Set(time.Date(2023, 12, 12, 9, 0, 0, 0, time.UTC))
	assert.True(t, f.slots.IsOutdated(av))
}

func TestSlotDeleteCascadesBooking(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	student := f.student(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)
	av := f.slot(t, tutor.ID, service.ID, at(8, 0))

	booking, err := f.bookings.Create(f.ctx, student.ID, av.ID)
	require.NoError(t, err)

	require.NoError(t, f.slots.Delete(f.ctx, tutor.ID, av.ID))

	bookings, err := f.bookings.ListForStudent(f.ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
	assert.Nil(t, f.lesson(t, booking.LessonID))

	slots, err := f.slots.ListForTutor(f.ctx, tutor.ID, now, now.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlotDeleteRejections(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	other := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)
	av := f.slot(t, tutor.ID, service.ID, at(8, 0))

	err := f.slots.Delete(f.ctx, other.ID, av.ID)
	assert.True(t, apperror.Is(err, apperror.KindAuthorization))

	err = f.slots.Delete(f.ctx, tutor.ID, 12345)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestSlotListForTutor(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)
	second := f.slot(t, tutor.ID, service.ID, at(10, 0))
	first := f.slot(t, tutor.ID, service.ID, at(8, 0))

	slots, err := f.slots.ListForTutor(f.ctx, tutor.ID, at(0, 0), at(23, 0))
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, first.ID, slots[0].ID)
	assert.Equal(t, second.ID, slots[1].ID)
}
