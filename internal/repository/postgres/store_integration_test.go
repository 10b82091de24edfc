//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/app"
	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/postgres"
	"github.com/Freeeeeet/tutoring_scheduler/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

// Понедельник, 7 января 2030, 08:00 UTC
var now = time.Date(2030, 1, 7, 8, 0, 0, 0, time.UTC)

type testEnv struct {
	ctx      context.Context
	pool     *pgxpool.Pool
	users    *service.UserService
	tutors   *service.TutorService
	slots    *service.SlotService
	bookings *service.BookingService
	subs     *service.SubscriptionService
	hours    *service.HourService
	lessons  *service.LessonService

	mu             sync.Mutex
	nextTelegramID int64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("user"),
		tcpostgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	logger := zap.NewNop()

	migrator, err := app.NewMigrator(pool, logger)
	require.NoError(t, err)
	require.NoError(t, migrator.Run(ctx))
	require.NoError(t, migrator.Close())

	store := postgres.NewStore(pool, 20, logger)
	clk := clock.NewFixed(now)

	return &testEnv{
		ctx:      ctx,
		pool:     pool,
		users:    service.NewUserService(store, logger),
		tutors:   service.NewTutorService(store, logger),
		slots:    service.NewSlotService(store, clk, logger),
		bookings: service.NewBookingService(store, clk, logger),
		subs:     service.NewSubscriptionService(store, clk, logger),
		hours:    service.NewHourService(store, clk, logger),
		lessons:  service.NewLessonService(store, logger),
	}
}

func (e *testEnv) student(t *testing.T) *model.User {
	t.Helper()
	e.mu.Lock()
	e.nextTelegramID++
	telegramID := e.nextTelegramID
	e.mu.Unlock()

	user, err := e.users.RegisterUser(e.ctx, telegramID, "student", "Student", "")
	require.NoError(t, err)
	return user
}

func (e *testEnv) tutor(t *testing.T) *model.User {
	t.Helper()
	user := e.student(t)
	require.NoError(t, e.users.BecomeTutor(e.ctx, user.ID))
	return user
}

func (e *testEnv) service(t *testing.T, tutorID, subjectID int64, hours, length int) *model.Service {
	t.Helper()
	svc, err := e.tutors.CreateService(e.ctx, tutorID, subjectID, hours, 150000, length)
	require.NoError(t, err)
	return svc
}

func TestMigrationsApplied(t *testing.T) {
	env := newTestEnv(t)

	var tables int
	err := env.pool.QueryRow(env.ctx, `
		SELECT count(*) FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name IN
			('users', 'subjects', 'services', 'availabilities', 'lessons', 'bookings',
			 'subscriptions', 'service_subscription_lists', 'appointments', 'recurring_availabilities')`,
	).Scan(&tables)
	require.NoError(t, err)
	assert.Equal(t, 10, tables)
}

func TestSlotOverlapAcrossServices(t *testing.T) {
	env := newTestEnv(t)

	tutor := env.tutor(t)
	maths, err := env.tutors.CreateSubject(env.ctx, "Algebra", model.CategoryMaths)
	require.NoError(t, err)
	physics, err := env.tutors.CreateSubject(env.ctx, "Physics", model.CategoryScience)
	require.NoError(t, err)

	first := env.service(t, tutor.ID, maths.ID, 1, 60)
	second := env.service(t, tutor.ID, physics.ID, 1, 90)

	_, err = env.slots.Create(env.ctx, tutor.ID, first.ID, now.Add(2*time.Hour))
	require.NoError(t, err)

	_, err = env.slots.Create(env.ctx, tutor.ID, second.ID, now.Add(2*time.Hour+30*time.Minute))
	assert.True(t, apperror.Is(err, apperror.KindConflict))

	// Касание границ не пересечение
	_, err = env.slots.Create(env.ctx, tutor.ID, second.ID, now.Add(3*time.Hour))
	assert.NoError(t, err)
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	env := newTestEnv(t)

	tutor := env.tutor(t)
	subject, err := env.tutors.CreateSubject(env.ctx, "Algebra", model.CategoryMaths)
	require.NoError(t, err)
	svc := env.service(t, tutor.ID, subject.ID, 1, 60)

	av, err := env.slots.Create(env.ctx, tutor.ID, svc.ID, now.Add(24*time.Hour))
	require.NoError(t, err)

	const students = 8
	ids := make([]int64, students)
	for i := range ids {
		ids[i] = env.student(t).ID
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for _, id := range ids {
		wg.Add(1)
		go func(studentID int64) {
			defer wg.Done()
			_, err := env.bookings.Create(env.ctx, studentID, av.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperror.Is(err, apperror.KindConflict):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, students-1, conflicts)
}

func TestConcurrentAllocationNeverOverdraws(t *testing.T) {
	env := newTestEnv(t)

	tutor := env.tutor(t)
	student := env.student(t)
	subject, err := env.tutors.CreateSubject(env.ctx, "Algebra", model.CategoryMaths)
	require.NoError(t, err)

	single := env.service(t, tutor.ID, subject.ID, 1, 60)
	pack := env.service(t, tutor.ID, subject.ID, 5, 60)

	av, err := env.slots.Create(env.ctx, tutor.ID, single.ID, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = env.bookings.Create(env.ctx, student.ID, av.ID)
	require.NoError(t, err)

	sub, err := env.subs.Create(env.ctx, tutor.ID, student.ID, subject.ID)
	require.NoError(t, err)
	_, err = env.hours.Purchase(env.ctx, student.ID, sub.ID, pack.ID)
	require.NoError(t, err)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		allocated int
		exhausted int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := env.hours.Allocate(env.ctx, tutor.ID, sub.ID, now.Add(time.Duration(i)*24*time.Hour))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				allocated++
			case apperror.Is(err, apperror.KindResourceExhausted):
				exhausted++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, allocated)
	assert.Equal(t, attempts-5, exhausted)

	summary, err := env.hours.Hours(env.ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, service.HourSummary{Total: 5, Used: 5, Left: 0}, summary)
}

func TestDeleteSlotRemovesBooking(t *testing.T) {
	env := newTestEnv(t)

	tutor := env.tutor(t)
	student := env.student(t)
	subject, err := env.tutors.CreateSubject(env.ctx, "Algebra", model.CategoryMaths)
	require.NoError(t, err)
	svc := env.service(t, tutor.ID, subject.ID, 1, 60)

	av, err := env.slots.Create(env.ctx, tutor.ID, svc.ID, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = env.bookings.Create(env.ctx, student.ID, av.ID)
	require.NoError(t, err)

	require.NoError(t, env.slots.Delete(env.ctx, tutor.ID, av.ID))

	bookings, err := env.bookings.ListForStudent(env.ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestLessonUpdateResolvesTutor(t *testing.T) {
	env := newTestEnv(t)

	tutor := env.tutor(t)
	other := env.tutor(t)
	student := env.student(t)
	subject, err := env.tutors.CreateSubject(env.ctx, "Algebra", model.CategoryMaths)
	require.NoError(t, err)
	single := env.service(t, tutor.ID, subject.ID, 1, 60)
	pack := env.service(t, tutor.ID, subject.ID, 5, 60)

	av, err := env.slots.Create(env.ctx, tutor.ID, single.ID, now.Add(time.Hour))
	require.NoError(t, err)
	booking, err := env.bookings.Create(env.ctx, student.ID, av.ID)
	require.NoError(t, err)

	lesson, err := env.lessons.Update(env.ctx, tutor.ID, booking.LessonID, "Quadratic equations", true)
	require.NoError(t, err)
	assert.Equal(t, "Quadratic equations", lesson.Title)
	assert.True(t, lesson.Absence)

	_, err = env.lessons.Update(env.ctx, other.ID, booking.LessonID, "Mine", false)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	bookings, err := env.bookings.ListForStudent(env.ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.NotNil(t, bookings[0].Lesson)
	assert.Equal(t, "Quadratic equations", bookings[0].Lesson.Title)

	// Занятие по подписке принадлежит учителю подписки
	sub, err := env.subs.Create(env.ctx, tutor.ID, student.ID, subject.ID)
	require.NoError(t, err)
	_, err = env.hours.Purchase(env.ctx, student.ID, sub.ID, pack.ID)
	require.NoError(t, err)
	appt, err := env.hours.Allocate(env.ctx, tutor.ID, sub.ID, now.Add(48*time.Hour))
	require.NoError(t, err)

	_, err = env.lessons.Update(env.ctx, tutor.ID, appt.LessonID, "Limits", false)
	require.NoError(t, err)
	_, err = env.lessons.Update(env.ctx, other.ID, appt.LessonID, "Limits", false)
	assert.Equal(t, apperror.KindAuthorization, apperror.KindOf(err))

	_, err = env.lessons.Update(env.ctx, tutor.ID, 999999, "Limits", false)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
