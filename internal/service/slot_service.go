package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"github.com/Freeeeeet/tutoring_scheduler/internal/timerange"
	"go.uber.org/zap"
)

// SlotService управляет слотами, которые учителя открывают для записи
type SlotService struct {
	store  repository.Store
	clock  clock.Clock
	logger *zap.Logger
}

func NewSlotService(store repository.Store, clk clock.Clock, logger *zap.Logger) *SlotService {
	return &SlotService{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Create создаёт слот услуги serviceID, начинающийся в start.
// Слот не может начинаться в прошлом и не может пересекаться
// ни с одним слотом того же учителя по любой из его услуг.
func (s *SlotService) Create(ctx context.Context, tutorID, serviceID int64, start time.Time) (*model.Availability, error) {
	av, err := s.create(ctx, tutorID, serviceID, start, s.clock.Now())
	observe("create_slot", err)
	return av, err
}

func (s *SlotService) create(ctx context.Context, tutorID, serviceID int64, start, now time.Time) (*model.Availability, error) {
	if start.IsZero() {
		return nil, apperror.Validation("start time is required")
	}

	if start.Before(now) {
		return nil, apperror.State(apperror.MsgSlotInPast)
	}

	var created *model.Availability
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		service, err := tx.Services().GetByID(ctx, serviceID)
		if err != nil {
			return fmt.Errorf("get service: %w", err)
		}

		if service == nil {
			return apperror.NotFound("service not found")
		}

		if service.TutorID != tutorID {
			return apperror.Authorization("service does not belong to tutor")
		}

		// Блокировка учителя сериализует проверку пересечений его слотов
		tutor, err := tx.Users().LockByID(ctx, tutorID)
		if err != nil {
			return fmt.Errorf("lock tutor: %w", err)
		}

		if tutor == nil {
			return apperror.NotFound("tutor not found")
		}

		proposed := timerange.FromStartAndDuration(start, service.SessionDuration())

		// Слот длиной не больше MaxSessionDuration, начавшийся раньше этого окна, не может пересечься с proposed
		candidates, err := tx.Availabilities().ListByTutor(ctx, tutorID, start.Add(-model.MaxSessionDuration), proposed.End)
		if err != nil {
			return fmt.Errorf("list tutor availabilities: %w", err)
		}

		for _, existing := range candidates {
			if existing.TimeRange().Overlaps(proposed) {
				s.logger.Debug("Slot rejected: overlap",
					zap.Int64("tutor_id", tutorID),
					zap.Int64("existing_id", existing.ID),
					zap.Time("start", start),
				)
				return apperror.Conflict(apperror.MsgConflictingSlot)
			}
		}

		av := &model.Availability{
			ServiceID: service.ID,
			Start:     start,
		}

		if err := tx.Availabilities().Create(ctx, av); err != nil {
			return fmt.Errorf("create availability: %w", err)
		}

		av.TutorID = service.TutorID
		av.SubjectID = service.SubjectID
		av.SessionLength = service.SessionLength
		created = av

		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.Info("Slot created",
		zap.Int64("availability_id", created.ID),
		zap.Int64("tutor_id", tutorID),
		zap.Int64("service_id", serviceID),
		zap.Time("start", start),
	)

	return created, nil
}

// IsOutdated проверяет что слот уже закончился
func (s *SlotService) IsOutdated(av *model.Availability) bool {
	return av.IsOutdated(s.clock.Now())
}

// Delete удаляет слот учителя вместе с бронированием и его занятием
func (s *SlotService) Delete(ctx context.Context, tutorID, availabilityID int64) error {
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		av, err := tx.Availabilities().GetByID(ctx, availabilityID)
		if err != nil {
			return fmt.Errorf("get availability: %w", err)
		}

		if av == nil {
			return apperror.NotFound("availability not found")
		}

		if av.TutorID != tutorID {
			return apperror.Authorization("availability does not belong to tutor")
		}

		booking, err := tx.Bookings().GetByAvailabilityID(ctx, availabilityID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}

		if booking != nil {
			// Удаление занятия каскадно удаляет бронирование
			if err := tx.Lessons().Delete(ctx, booking.LessonID); err != nil {
				return err
			}
		}

		return tx.Availabilities().Delete(ctx, availabilityID)
	})

	observe("delete_slot", err)
	if err != nil {
		return err
	}

	s.logger.Info("Slot deleted",
		zap.Int64("availability_id", availabilityID),
		zap.Int64("tutor_id", tutorID),
	)

	return nil
}

// ListForTutor возвращает слоты учителя с началом в [from, to)
func (s *SlotService) ListForTutor(ctx context.Context, tutorID int64, from, to time.Time) ([]*model.Availability, error) {
	var list []*model.Availability
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		list, err = tx.Availabilities().ListByTutor(ctx, tutorID, from, to)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	return list, nil
}
