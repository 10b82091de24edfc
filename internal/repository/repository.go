package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/google/uuid"
)

// ErrDuplicate нарушение ограничения уникальности при вставке
var ErrDuplicate = errors.New("duplicate record")

// Store открывает транзакции поверх хранилища.
// fn может быть вызвана повторно, если транзакцию пришлось перезапустить.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx набор репозиториев, работающих в одной транзакции
type Tx interface {
	Users() UserRepository
	Subjects() SubjectRepository
	Services() ServiceRepository
	Availabilities() AvailabilityRepository
	Lessons() LessonRepository
	Bookings() BookingRepository
	Subscriptions() SubscriptionRepository
	HourBlocks() HourBlockRepository
	Appointments() AppointmentRepository
	Recurring() RecurringRepository
}

// Методы Get* возвращают (nil, nil), если запись не найдена.

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	SetRole(ctx context.Context, id int64, role model.Role) error
	// LockByID блокирует строку пользователя до конца транзакции
	LockByID(ctx context.Context, id int64) (*model.User, error)
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id int64) (*model.Subject, error)
	List(ctx context.Context) ([]*model.Subject, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, service *model.Service) error
	GetByID(ctx context.Context, id int64) (*model.Service, error)
	ListByTutor(ctx context.Context, tutorID int64) ([]*model.Service, error)
	// GetDefault возвращает услугу на одно занятие по предмету
	GetDefault(ctx context.Context, tutorID, subjectID int64) (*model.Service, error)
}

type AvailabilityRepository interface {
	Create(ctx context.Context, availability *model.Availability) error
	GetByID(ctx context.Context, id int64) (*model.Availability, error)
	// ListByTutor возвращает слоты учителя с началом в [from, to)
	ListByTutor(ctx context.Context, tutorID int64, from, to time.Time) ([]*model.Availability, error)
	Delete(ctx context.Context, id int64) error
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByID(ctx context.Context, id int64) (*model.Lesson, error)
	// Update сохраняет тему занятия и отметку об отсутствии
	Update(ctx context.Context, lesson *model.Lesson) error
	// GetTutorID возвращает учителя занятия через бронирование или запись подписки, 0 если связи нет
	GetTutorID(ctx context.Context, lessonID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetByAvailabilityID(ctx context.Context, availabilityID int64) (*model.Booking, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*model.Booking, error)
	ExistsForTutorAndStudent(ctx context.Context, tutorID, studentID int64) (bool, error)
	Delete(ctx context.Context, id int64) error
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *model.Subscription) error
	GetByID(ctx context.Context, id int64) (*model.Subscription, error)
	// LockByID блокирует строку подписки до конца транзакции
	LockByID(ctx context.Context, id int64) (*model.Subscription, error)
	Find(ctx context.Context, tutorID, studentID, subjectID int64) (*model.Subscription, error)
	ListByUser(ctx context.Context, userID int64) ([]*model.Subscription, error)
}

type HourBlockRepository interface {
	Create(ctx context.Context, block *model.HourBlock) error
	// ListUsage возвращает пакеты подписки по дате покупки, затем по id
	ListUsage(ctx context.Context, subscriptionID int64) ([]model.HourBlockUsage, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetByID(ctx context.Context, id int64) (*model.Appointment, error)
	ListBySubscription(ctx context.Context, subscriptionID int64) ([]*model.Appointment, error)
	Delete(ctx context.Context, id int64) error
}

type RecurringRepository interface {
	Create(ctx context.Context, r *model.RecurringAvailability) error
	GetByID(ctx context.Context, id int64) (*model.RecurringAvailability, error)
	ListByTutor(ctx context.Context, tutorID int64) ([]*model.RecurringAvailability, error)
	ListByGroupID(ctx context.Context, groupID uuid.UUID) ([]*model.RecurringAvailability, error)
	ListActive(ctx context.Context) ([]*model.RecurringAvailability, error)
	SetActiveByGroupID(ctx context.Context, groupID uuid.UUID, active bool) error
	DeleteByGroupID(ctx context.Context, groupID uuid.UUID) error
}
