package service

import (
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRecurringGeneratesSlots(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)

	groupID, err := f.slots.CreateRecurring(f.ctx, tutor.ID, service.ID,
		[]int{int(time.Wednesday), int(time.Friday)},
		[]TimeOfDay{{Hour: 18, Minute: 0}})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, groupID)

	slots, err := f.slots.ListForTutor(f.ctx, tutor.ID, now, now.AddDate(0, 0, 7*InitialWeeksAhead))
	require.NoError(t, err)
	require.Len(t, slots, 2*InitialWeeksAhead)
	assert.Equal(t, time.Date(2023, 12, 13, 18, 0, 0, 0, time.UTC), slots[0].Start)

	templates, err := f.slots.ListRecurring(f.ctx, tutor.ID)
	require.NoError(t, err)
	assert.Len(t, templates, 2)
}

func TestGenerateRecurringSkipsExistingAndConflicting(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)

	// Занятое время в первую среду
	f.slot(t, tutor.ID, service.ID, time.Date(2023, 12, 13, 18, 30, 0, 0, time.UTC))

	_, err := f.slots.CreateRecurring(f.ctx, tutor.ID, service.ID, []int{int(time.Wednesday)}, []TimeOfDay{{Hour: 18}})
	require.NoError(t, err)

	slots, err := f.slots.ListForTutor(f.ctx, tutor.ID, now, now.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Len(t, slots, InitialWeeksAhead)

	created, err := f.slots.GenerateRecurring(f.ctx, InitialWeeksAhead)
	require.NoError(t, err)
	assert.Zero(t, created)

	f.clock.Advance(7 * 24 * time.Hour)
	created, err = f.slots.GenerateRecurring(f.ctx, InitialWeeksAhead)
	require.NoError(t, err)
	assert.Equal(t, 1, created)
}

func TestRecurringGroupLifecycle(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	other := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)

	groupID, err := f.slots.CreateRecurring(f.ctx, tutor.ID, service.ID, []int{int(time.Monday)}, []TimeOfDay{{Hour: 9}})
	require.NoError(t, err)

	err = f.slots.DeactivateRecurringGroup(f.ctx, other.ID, groupID)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	require.NoError(t, f.slots.DeactivateRecurringGroup(f.ctx, tutor.ID, groupID))

	f.clock.Advance(14 * 24 * time.Hour)
	created, err := f.slots.GenerateRecurring(f.ctx, InitialWeeksAhead)
	require.NoError(t, err)
	assert.Zero(t, created)

	require.NoError(t, f.slots.DeleteRecurringGroup(f.ctx, tutor.ID, groupID))

	err = f.slots.DeleteRecurringGroup(f.ctx, tutor.ID, groupID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestCreateRecurringValidation(t *testing.T) {
	f := newFixture(t)
	tutor := f.tutor(t)
	other := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)

	_, err := f.slots.CreateRecurring(f.ctx, tutor.ID, service.ID, nil, []TimeOfDay{{Hour: 9}})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.slots.CreateRecurring(f.ctx, tutor.ID, service.ID, []int{7}, []TimeOfDay{{Hour: 9}})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.slots.CreateRecurring(f.ctx, tutor.ID, service.ID, []int{1}, []TimeOfDay{{Hour: 24}})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.slots.CreateRecurring(f.ctx, other.ID, service.ID, []int{1}, []TimeOfDay{{Hour: 9}})
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))
}

func TestCreateRecurringOnNonUTCClock(t *testing.T) {
	f := newFixture(t)
	f.clock.Set(now.In(time.FixedZone("MSK", 3*60*60)))

	tutor := f.tutor(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)

	// Разовый слот на то же время второй среды
	f.slot(t, tutor.ID, service.ID, time.Date(2023, 12, 20, 18, 0, 0, 0, time.UTC))

	_, err := f.slots.CreateRecurring(f.ctx, tutor.ID, service.ID, []int{int(time.Wednesday)}, []TimeOfDay{{Hour: 18}})
	require.NoError(t, err)

	slots, err := f.slots.ListForTutor(f.ctx, tutor.ID, now, now.AddDate(0, 0, 7*InitialWeeksAhead))
	require.NoError(t, err)
	require.Len(t, slots, InitialWeeksAhead)

	for i, av := range slots {
		want := time.Date(2023, 12, 13, 18, 0, 0, 0, time.UTC).AddDate(0, 0, 7*i)
		assert.WithinDuration(t, want, av.Start, 0)
	}
}
