package service

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/memory"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Вторник, 12 декабря 2023, 07:00 UTC
var now = time.Date(2023, 12, 12, 7, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2023, 12, 12, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	ctx   context.Context
	store *memory.Store
	clock *clock.Fixed

	users    *UserService
	tutors   *TutorService
	slots    *SlotService
	bookings *BookingService
	hours    *HourService
	subs     *SubscriptionService
	lessons  *LessonService

	nextTelegramID int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clk := clock.NewFixed(now)
	store := memory.NewStore(clk)
	logger := zap.NewNop()

	return &fixture{
		ctx:      context.Background(),
		store:    store,
		clock:    clk,
		users:    NewUserService(store, logger),
		tutors:   NewTutorService(store, logger),
		slots:    NewSlotService(store, clk, logger),
		bookings: NewBookingService(store, clk, logger),
		hours:    NewHourService(store, clk, logger),
		subs:     NewSubscriptionService(store, clk, logger),
		lessons:  NewLessonService(store, logger),
	}
}

func (f *fixture) student(t *testing.T) *model.User {
	t.Helper()
	f.nextTelegramID++
	user, err := f.users.RegisterUser(f.ctx, f.nextTelegramID, "student", "Student", "")
	require.NoError(t, err)
	return user
}

func (f *fixture) tutor(t *testing.T) *model.User {
	t.Helper()
	user := f.student(t)
	require.NoError(t, f.users.BecomeTutor(f.ctx, user.ID))
	user.Role = model.RoleTutor
	return user
}

func (f *fixture) subject(t *testing.T, name string) *model.Subject {
	t.Helper()
	subject, err := f.tutors.CreateSubject(f.ctx, name, model.CategoryMaths)
	require.NoError(t, err)
	return subject
}

func (f *fixture) service(t *testing.T, tutorID, subjectID int64, hours, length int) *model.Service {
	t.Helper()
	service, err := f.tutors.CreateService(f.ctx, tutorID, subjectID, hours, 1000, length)
	require.NoError(t, err)
	return service
}

func (f *fixture) slot(t *testing.T, tutorID, serviceID int64, start time.Time) *model.Availability {
	t.Helper()
	av, err := f.slots.Create(f.ctx, tutorID, serviceID, start)
	require.NoError(t, err)
	return av
}

// subscription создаёт подписку напрямую в хранилище
func (f *fixture) subscription(t *testing.T, tutorID, studentID, subjectID int64) *model.Subscription {
	t.Helper()
	sub := &model.Subscription{TutorID: tutorID, StudentID: studentID, SubjectID: subjectID, StartDate: now}
	err := f.store.InTx(f.ctx, func(tx repository.Tx) error {
		return tx.Subscriptions().Create(f.ctx, sub)
	})
	require.NoError(t, err)
	return sub
}

func (f *fixture) lesson(t *testing.T, id int64) *model.Lesson {
	t.Helper()
	var lesson *model.Lesson
	err := f.store.InTx(f.ctx, func(tx repository.Tx) error {
		var err error
		lesson, err = tx.Lessons().GetByID(f.ctx, id)
		return err
	})
	require.NoError(t, err)
	return lesson
}
