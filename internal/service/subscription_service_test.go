package service

import (
	"testing"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type subscriptionSetup struct {
	tutor   *model.User
	student *model.User
	subject *model.Subject
}

// newSubscriptionSetup учитель с услугой на одно занятие и студент, который уже записывался к нему
func newSubscriptionSetup(t *testing.T, f *fixture) subscriptionSetup {
	t.Helper()
	tutor := f.tutor(t)
	student := f.student(t)
	subject := f.subject(t, "Algebra")
	service := f.service(t, tutor.ID, subject.ID, 1, 60)
	av := f.slot(t, tutor.ID, service.ID, at(8, 0))

	_, err := f.bookings.Create(f.ctx, student.ID, av.ID)
	require.NoError(t, err)

	return subscriptionSetup{tutor: tutor, student: student, subject: subject}
}

func TestSubscriptionUniqueness(t *testing.T) {
	f := newFixture(t)
	s := newSubscriptionSetup(t, f)

	sub, err := f.subs.Create(f.ctx, s.tutor.ID, s.student.ID, s.subject.ID)
	require.NoError(t, err)
	assert.Equal(t, now, sub.StartDate)

	_, err = f.subs.Create(f.ctx, s.tutor.ID, s.student.ID, s.subject.ID)
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, apperror.MsgAlreadyExists, apperror.MessageOf(err))

	got, err := f.subs.Get(f.ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)

	subs, err := f.subs.ListForUser(f.ctx, s.student.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestSubscriptionRejections(t *testing.T) {
	f := newFixture(t)
	s := newSubscriptionSetup(t, f)
	newcomer := f.student(t)
	physics := f.subject(t, "Physics")

	_, err := f.subs.Create(f.ctx, s.student.ID, s.student.ID, s.subject.ID)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	_, err = f.subs.Create(f.ctx, s.tutor.ID, s.tutor.ID, s.subject.ID)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = f.subs.Create(f.ctx, s.tutor.ID, s.student.ID, physics.ID)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, apperror.MsgSubjectNotTaught, apperror.MessageOf(err))

	_, err = f.subs.Create(f.ctx, s.tutor.ID, newcomer.ID, s.subject.ID)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, apperror.MsgNoPriorBooking, apperror.MessageOf(err))

	_, err = f.subs.Get(f.ctx, 999)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
