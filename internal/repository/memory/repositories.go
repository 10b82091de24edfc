package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"github.com/google/uuid"
)

type users struct{ d *data }

func (r users) Create(_ context.Context, user *model.User) error {
	for _, u := range r.d.users {
		if u.TelegramID == user.TelegramID {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.d.id()
	user.CreatedAt = r.d.clock.Now()
	r.d.users[user.ID] = *user
	return nil
}

func (r users) GetByID(_ context.Context, id int64) (*model.User, error) {
	return ptr(r.d.users, id), nil
}

func (r users) GetByTelegramID(_ context.Context, telegramID int64) (*model.User, error) {
	for _, u := range r.d.users {
		if u.TelegramID == telegramID {
			return &u, nil
		}
	}
	return nil, nil
}

func (r users) LockByID(ctx context.Context, id int64) (*model.User, error) {
	return r.GetByID(ctx, id)
}

func (r users) Update(_ context.Context, user *model.User) error {
	u, ok := r.d.users[user.ID]
	if !ok {
		return nil
	}
	u.Username, u.FirstName, u.LastName = user.Username, user.FirstName, user.LastName
	r.d.users[user.ID] = u
	return nil
}

func (r users) SetRole(_ context.Context, id int64, role model.Role) error {
	if u, ok := r.d.users[id]; ok {
		u.Role = role
		r.d.users[id] = u
	}
	return nil
}

type subjects struct{ d *data }

func (r subjects) Create(_ context.Context, subject *model.Subject) error {
	for _, s := range r.d.subjects {
		if s.Name == subject.Name {
			return repository.ErrDuplicate
		}
	}
	subject.ID = r.d.id()
	r.d.subjects[subject.ID] = *subject
	return nil
}

func (r subjects) GetByID(_ context.Context, id int64) (*model.Subject, error) {
	return ptr(r.d.subjects, id), nil
}

func (r subjects) List(_ context.Context) ([]*model.Subject, error) {
	list := collect(r.d.subjects, func(model.Subject) bool { return true })
	slices.SortFunc(list, func(a, b *model.Subject) int {
		return cmp.Or(cmp.Compare(a.Category, b.Category), cmp.Compare(a.Name, b.Name))
	})
	return list, nil
}

type services struct{ d *data }

func (r services) Create(_ context.Context, service *model.Service) error {
	if service.IsDefault() {
		for _, s := range r.d.services {
			if s.IsDefault() && s.TutorID == service.TutorID && s.SubjectID == service.SubjectID {
				return repository.ErrDuplicate
			}
		}
	}
	service.ID = r.d.id()
	service.CreatedAt = r.d.clock.Now()
	r.d.services[service.ID] = *service
	return nil
}

func (r services) GetByID(_ context.Context, id int64) (*model.Service, error) {
	return ptr(r.d.services, id), nil
}

func (r services) ListByTutor(_ context.Context, tutorID int64) ([]*model.Service, error) {
	list := collect(r.d.services, func(s model.Service) bool { return s.TutorID == tutorID })
	slices.SortFunc(list, func(a, b *model.Service) int {
		return cmp.Or(cmp.Compare(a.SubjectID, b.SubjectID), cmp.Compare(a.NumberOfHours, b.NumberOfHours))
	})
	return list, nil
}

func (r services) GetDefault(_ context.Context, tutorID, subjectID int64) (*model.Service, error) {
	for _, s := range r.d.services {
		if s.TutorID == tutorID && s.SubjectID == subjectID && s.IsDefault() {
			return &s, nil
		}
	}
	return nil, nil
}

type availabilities struct{ d *data }

func (r availabilities) Create(_ context.Context, availability *model.Availability) error {
	availability.ID = r.d.id()
	availability.CreatedAt = r.d.clock.Now()
	stored := *availability
	stored.TutorID, stored.SubjectID, stored.SessionLength = 0, 0, 0
	r.d.availabilities[availability.ID] = stored
	return nil
}

func (r availabilities) GetByID(_ context.Context, id int64) (*model.Availability, error) {
	a, ok := r.d.availabilities[id]
	if !ok {
		return nil, nil
	}
	return r.join(a), nil
}

func (r availabilities) ListByTutor(_ context.Context, tutorID int64, from, to time.Time) ([]*model.Availability, error) {
	var list []*model.Availability
	for _, a := range r.d.availabilities {
		joined := r.join(a)
		if joined.TutorID == tutorID && !joined.Start.Before(from) && joined.Start.Before(to) {
			list = append(list, joined)
		}
	}
	slices.SortFunc(list, func(a, b *model.Availability) int {
		return cmp.Or(a.Start.Compare(b.Start), cmp.Compare(a.ID, b.ID))
	})
	return list, nil
}

func (r availabilities) Delete(_ context.Context, id int64) error {
	delete(r.d.availabilities, id)
	for bid, b := range r.d.bookings {
		if b.AvailabilityID == id {
			delete(r.d.bookings, bid)
		}
	}
	return nil
}

func (r availabilities) join(a model.Availability) *model.Availability {
	s := r.d.services[a.ServiceID]
	a.TutorID, a.SubjectID, a.SessionLength = s.TutorID, s.SubjectID, s.SessionLength
	return &a
}

type lessons struct{ d *data }

func (r lessons) Create(_ context.Context, lesson *model.Lesson) error {
	lesson.ID = r.d.id()
	lesson.CreatedAt = r.d.clock.Now()
	r.d.lessons[lesson.ID] = *lesson
	return nil
}

func (r lessons) GetByID(_ context.Context, id int64) (*model.Lesson, error) {
	return ptr(r.d.lessons, id), nil
}

func (r lessons) Update(_ context.Context, lesson *model.Lesson) error {
	l, ok := r.d.lessons[lesson.ID]
	if !ok {
		return nil
	}
	l.Title, l.Absence = lesson.Title, lesson.Absence
	r.d.lessons[lesson.ID] = l
	return nil
}

func (r lessons) GetTutorID(_ context.Context, lessonID int64) (int64, error) {
	for _, b := range r.d.bookings {
		if b.LessonID == lessonID {
			av := r.d.availabilities[b.AvailabilityID]
			return r.d.services[av.ServiceID].TutorID, nil
		}
	}
	for _, a := range r.d.appointments {
		if a.LessonID == lessonID {
			block := r.d.hourBlocks[a.HourBlockID]
			return r.d.subscriptions[block.SubscriptionID].TutorID, nil
		}
	}
	return 0, nil
}

func (r lessons) Delete(_ context.Context, id int64) error {
	r.d.deleteLesson(id)
	return nil
}

type bookings struct{ d *data }

func (r bookings) Create(_ context.Context, booking *model.Booking) error {
	for _, b := range r.d.bookings {
		if b.AvailabilityID == booking.AvailabilityID || b.LessonID == booking.LessonID {
			return repository.ErrDuplicate
		}
	}
	booking.ID = r.d.id()
	booking.CreateDate = r.d.clock.Now()
	stored := *booking
	stored.Availability, stored.Lesson = nil, nil
	r.d.bookings[booking.ID] = stored
	return nil
}

func (r bookings) GetByID(_ context.Context, id int64) (*model.Booking, error) {
	return ptr(r.d.bookings, id), nil
}

func (r bookings) GetByAvailabilityID(_ context.Context, availabilityID int64) (*model.Booking, error) {
	for _, b := range r.d.bookings {
		if b.AvailabilityID == availabilityID {
			return &b, nil
		}
	}
	return nil, nil
}

func (r bookings) ListByStudent(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	list := collect(r.d.bookings, func(b model.Booking) bool { return b.StudentID == studentID })
	avs := availabilities(r)
	for _, b := range list {
		b.Availability, _ = avs.GetByID(ctx, b.AvailabilityID)
	}
	slices.SortFunc(list, func(a, b *model.Booking) int {
		return a.Availability.Start.Compare(b.Availability.Start)
	})
	return list, nil
}

func (r bookings) ExistsForTutorAndStudent(ctx context.Context, tutorID, studentID int64) (bool, error) {
	avs := availabilities(r)
	for _, b := range r.d.bookings {
		if b.StudentID != studentID {
			continue
		}
		if av, _ := avs.GetByID(ctx, b.AvailabilityID); av != nil && av.TutorID == tutorID {
			return true, nil
		}
	}
	return false, nil
}

func (r bookings) Delete(_ context.Context, id int64) error {
	delete(r.d.bookings, id)
	return nil
}

type subscriptions struct{ d *data }

func (r subscriptions) Create(_ context.Context, sub *model.Subscription) error {
	for _, s := range r.d.subscriptions {
		if s.TutorID == sub.TutorID && s.StudentID == sub.StudentID && s.SubjectID == sub.SubjectID {
			return repository.ErrDuplicate
		}
	}
	sub.ID = r.d.id()
	r.d.subscriptions[sub.ID] = *sub
	return nil
}

func (r subscriptions) GetByID(_ context.Context, id int64) (*model.Subscription, error) {
	return ptr(r.d.subscriptions, id), nil
}

func (r subscriptions) LockByID(ctx context.Context, id int64) (*model.Subscription, error) {
	return r.GetByID(ctx, id)
}

func (r subscriptions) Find(_ context.Context, tutorID, studentID, subjectID int64) (*model.Subscription, error) {
	for _, s := range r.d.subscriptions {
		if s.TutorID == tutorID && s.StudentID == studentID && s.SubjectID == subjectID {
			return &s, nil
		}
	}
	return nil, nil
}

func (r subscriptions) ListByUser(_ context.Context, userID int64) ([]*model.Subscription, error) {
	list := collect(r.d.subscriptions, func(s model.Subscription) bool { return s.IsParticipant(userID) })
	slices.SortFunc(list, func(a, b *model.Subscription) int {
		return cmp.Or(a.StartDate.Compare(b.StartDate), cmp.Compare(a.ID, b.ID))
	})
	return list, nil
}

type hourBlocks struct{ d *data }

func (r hourBlocks) Create(_ context.Context, block *model.HourBlock) error {
	block.ID = r.d.id()
	r.d.hourBlocks[block.ID] = *block
	return nil
}

func (r hourBlocks) ListUsage(_ context.Context, subscriptionID int64) ([]model.HourBlockUsage, error) {
	var usage []model.HourBlockUsage
	for _, b := range r.d.hourBlocks {
		if b.SubscriptionID != subscriptionID {
			continue
		}
		s := r.d.services[b.ServiceID]
		used := 0
		for _, a := range r.d.appointments {
			if a.HourBlockID == b.ID {
				used++
			}
		}
		usage = append(usage, model.HourBlockUsage{
			Block:         b,
			TutorID:       s.TutorID,
			NumberOfHours: s.NumberOfHours,
			SessionLength: s.SessionLength,
			Used:          used,
		})
	}
	slices.SortFunc(usage, func(a, b model.HourBlockUsage) int {
		return cmp.Or(a.Block.PurchaseDate.Compare(b.Block.PurchaseDate), cmp.Compare(a.Block.ID, b.Block.ID))
	})
	return usage, nil
}

type appointments struct{ d *data }

func (r appointments) Create(_ context.Context, appointment *model.Appointment) error {
	for _, a := range r.d.appointments {
		if a.LessonID == appointment.LessonID {
			return repository.ErrDuplicate
		}
	}
	appointment.ID = r.d.id()
	r.d.appointments[appointment.ID] = model.Appointment{
		ID:          appointment.ID,
		HourBlockID: appointment.HourBlockID,
		LessonID:    appointment.LessonID,
	}
	return nil
}

func (r appointments) GetByID(_ context.Context, id int64) (*model.Appointment, error) {
	a, ok := r.d.appointments[id]
	if !ok {
		return nil, nil
	}
	return r.join(a), nil
}

func (r appointments) ListBySubscription(_ context.Context, subscriptionID int64) ([]*model.Appointment, error) {
	var list []*model.Appointment
	for _, a := range r.d.appointments {
		if joined := r.join(a); joined.SubscriptionID == subscriptionID {
			list = append(list, joined)
		}
	}
	slices.SortFunc(list, func(a, b *model.Appointment) int {
		return cmp.Or(a.LessonDate.Compare(b.LessonDate), cmp.Compare(a.ID, b.ID))
	})
	return list, nil
}

func (r appointments) Delete(_ context.Context, id int64) error {
	delete(r.d.appointments, id)
	return nil
}

func (r appointments) join(a model.Appointment) *model.Appointment {
	block := r.d.hourBlocks[a.HourBlockID]
	a.SubscriptionID = block.SubscriptionID
	a.SessionLength = r.d.services[block.ServiceID].SessionLength
	a.LessonDate = r.d.lessons[a.LessonID].Date
	return &a
}

type recurring struct{ d *data }

func (r recurring) Create(_ context.Context, rec *model.RecurringAvailability) error {
	rec.ID = r.d.id()
	rec.CreatedAt = r.d.clock.Now()
	rec.UpdatedAt = rec.CreatedAt
	r.d.recurring[rec.ID] = *rec
	return nil
}

func (r recurring) GetByID(_ context.Context, id int64) (*model.RecurringAvailability, error) {
	return ptr(r.d.recurring, id), nil
}

func (r recurring) ListByTutor(_ context.Context, tutorID int64) ([]*model.RecurringAvailability, error) {
	return sortRecurring(collect(r.d.recurring, func(rec model.RecurringAvailability) bool { return rec.TutorID == tutorID })), nil
}

func (r recurring) ListByGroupID(_ context.Context, groupID uuid.UUID) ([]*model.RecurringAvailability, error) {
	return sortRecurring(collect(r.d.recurring, func(rec model.RecurringAvailability) bool { return rec.GroupID == groupID })), nil
}

func (r recurring) ListActive(_ context.Context) ([]*model.RecurringAvailability, error) {
	return sortRecurring(collect(r.d.recurring, func(rec model.RecurringAvailability) bool { return rec.IsActive })), nil
}

func (r recurring) SetActiveByGroupID(_ context.Context, groupID uuid.UUID, active bool) error {
	for id, rec := range r.d.recurring {
		if rec.GroupID == groupID {
			rec.IsActive = active
			rec.UpdatedAt = r.d.clock.Now()
			r.d.recurring[id] = rec
		}
	}
	return nil
}

func (r recurring) DeleteByGroupID(_ context.Context, groupID uuid.UUID) error {
	for id, rec := range r.d.recurring {
		if rec.GroupID == groupID {
			delete(r.d.recurring, id)
		}
	}
	return nil
}

func sortRecurring(list []*model.RecurringAvailability) []*model.RecurringAvailability {
	slices.SortFunc(list, func(a, b *model.RecurringAvailability) int {
		return cmp.Or(
			cmp.Compare(a.TutorID, b.TutorID),
			cmp.Compare(a.Weekday, b.Weekday),
			cmp.Compare(a.StartHour, b.StartHour),
			cmp.Compare(a.StartMinute, b.StartMinute),
		)
	})
	return list
}

func ptr[T any](m map[int64]T, id int64) *T {
	v, ok := m[id]
	if !ok {
		return nil
	}
	return &v
}

func collect[T any](m map[int64]T, keep func(T) bool) []*T {
	var list []*T
	for _, v := range m {
		if keep(v) {
			list = append(list, &v)
		}
	}
	return list
}
