package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/metrics"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

const retryBaseDelay = 10 * time.Millisecond

// Store выполняет операции в serializable транзакциях PostgreSQL
type Store struct {
	pool       *pgxpool.Pool
	maxRetries uint64
	logger     *zap.Logger
}

// NewStore создаёт хранилище поверх пула соединений
func NewStore(pool *pgxpool.Pool, maxRetries uint64, logger *zap.Logger) *Store {
	return &Store{
		pool:       pool,
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// InTx выполняет fn в serializable транзакции.
// При конфликте сериализации или дедлоке транзакция повторяется с экспоненциальной задержкой.
func (s *Store) InTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(retryBaseDelay))

	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{IsoLevel: pgx.Serializable}, func(pgTx pgx.Tx) error {
			return fn(newTx(pgTx))
		})
		if base.IsSerializationFailure(err) {
			metrics.TxRetries.Inc()
			s.logger.Debug("Retrying transaction after serialization failure",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
			return retry.RetryableError(err)
		}
		return err
	})
}

type tx struct {
	users          *UserRepository
	subjects       *SubjectRepository
	services       *ServiceRepository
	availabilities *AvailabilityRepository
	lessons        *LessonRepository
	bookings       *BookingRepository
	subscriptions  *SubscriptionRepository
	hourBlocks     *HourBlockRepository
	appointments   *AppointmentRepository
	recurring      *RecurringRepository
}

func newTx(db base.DBTX) *tx {
	return &tx{
		users:          NewUserRepository(db),
		subjects:       NewSubjectRepository(db),
		services:       NewServiceRepository(db),
		availabilities: NewAvailabilityRepository(db),
		lessons:        NewLessonRepository(db),
		bookings:       NewBookingRepository(db),
		subscriptions:  NewSubscriptionRepository(db),
		hourBlocks:     NewHourBlockRepository(db),
		appointments:   NewAppointmentRepository(db),
		recurring:      NewRecurringRepository(db),
	}
}

func (t *tx) Users() repository.UserRepository                  { return t.users }
func (t *tx) Subjects() repository.SubjectRepository            { return t.subjects }
func (t *tx) Services() repository.ServiceRepository            { return t.services }
func (t *tx) Availabilities() repository.AvailabilityRepository { return t.availabilities }
func (t *tx) Lessons() repository.LessonRepository              { return t.lessons }
func (t *tx) Bookings() repository.BookingRepository            { return t.bookings }
func (t *tx) Subscriptions() repository.SubscriptionRepository  { return t.subscriptions }
func (t *tx) HourBlocks() repository.HourBlockRepository        { return t.hourBlocks }
func (t *tx) Appointments() repository.AppointmentRepository    { return t.appointments }
func (t *tx) Recurring() repository.RecurringRepository         { return t.recurring }

// insertErr переводит нарушение уникальности в repository.ErrDuplicate
func insertErr(op string, err error) error {
	if base.IsUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, repository.ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
