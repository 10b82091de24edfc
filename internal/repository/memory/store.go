// Package memory хранилище в памяти с теми же ограничениями, что и схема PostgreSQL.
package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
)

// Store выполняет транзакции строго последовательно.
// При ошибке fn все изменения транзакции откатываются.
type Store struct {
	mu   sync.Mutex
	data *data
}

// NewStore создаёт пустое хранилище. Время создания записей берётся из clk.
func NewStore(clk clock.Clock) *Store {
	return &Store{data: newData(clk)}
}

type data struct {
	clock  clock.Clock
	nextID int64

	users          map[int64]model.User
	subjects       map[int64]model.Subject
	services       map[int64]model.Service
	availabilities map[int64]model.Availability
	lessons        map[int64]model.Lesson
	bookings       map[int64]model.Booking
	subscriptions  map[int64]model.Subscription
	hourBlocks     map[int64]model.HourBlock
	appointments   map[int64]model.Appointment
	recurring      map[int64]model.RecurringAvailability
}

func newData(clk clock.Clock) *data {
	return &data{
		clock:          clk,
		users:          map[int64]model.User{},
		subjects:       map[int64]model.Subject{},
		services:       map[int64]model.Service{},
		availabilities: map[int64]model.Availability{},
		lessons:        map[int64]model.Lesson{},
		bookings:       map[int64]model.Booking{},
		subscriptions:  map[int64]model.Subscription{},
		hourBlocks:     map[int64]model.HourBlock{},
		appointments:   map[int64]model.Appointment{},
		recurring:      map[int64]model.RecurringAvailability{},
	}
}

func (d *data) clone() *data {
	return &data{
		clock:          d.clock,
		nextID:         d.nextID,
		users:          maps.Clone(d.users),
		subjects:       maps.Clone(d.subjects),
		services:       maps.Clone(d.services),
		availabilities: maps.Clone(d.availabilities),
		lessons:        maps.Clone(d.lessons),
		bookings:       maps.Clone(d.bookings),
		subscriptions:  maps.Clone(d.subscriptions),
		hourBlocks:     maps.Clone(d.hourBlocks),
		appointments:   maps.Clone(d.appointments),
		recurring:      maps.Clone(d.recurring),
	}
}

func (d *data) id() int64 {
	d.nextID++
	return d.nextID
}

// InTx выполняет fn под глобальной блокировкой
func (s *Store) InTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(&tx{d: s.data}); err != nil {
		s.data = snapshot
		return err
	}

	return nil
}

type tx struct {
	d *data
}

func (t *tx) Users() repository.UserRepository                  { return users{t.d} }
func (t *tx) Subjects() repository.SubjectRepository            { return subjects{t.d} }
func (t *tx) Services() repository.ServiceRepository            { return services{t.d} }
func (t *tx) Availabilities() repository.AvailabilityRepository { return availabilities{t.d} }
func (t *tx) Lessons() repository.LessonRepository              { return lessons{t.d} }
func (t *tx) Bookings() repository.BookingRepository            { return bookings{t.d} }
func (t *tx) Subscriptions() repository.SubscriptionRepository  { return subscriptions{t.d} }
func (t *tx) HourBlocks() repository.HourBlockRepository        { return hourBlocks{t.d} }
func (t *tx) Appointments() repository.AppointmentRepository    { return appointments{t.d} }
func (t *tx) Recurring() repository.RecurringRepository         { return recurring{t.d} }

// deleteLesson удаляет занятие и каскадно ссылающиеся на него бронирования и записи
func (d *data) deleteLesson(id int64) {
	delete(d.lessons, id)
	for bid, b := range d.bookings {
		if b.LessonID == id {
			delete(d.bookings, bid)
		}
	}
	for aid, a := range d.appointments {
		if a.LessonID == id {
			delete(d.appointments, aid)
		}
	}
}
