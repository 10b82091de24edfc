package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/metrics"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitialWeeksAhead на сколько недель вперёд создаются слоты нового шаблона
const InitialWeeksAhead = 4

// TimeOfDay время начала слота в шаблоне
type TimeOfDay struct {
	Hour   int
	Minute int
}

// CreateRecurring создаёт группу еженедельных шаблонов для каждой пары день/время
// и сразу генерирует по ним слоты на InitialWeeksAhead недель вперёд
func (s *SlotService) CreateRecurring(ctx context.Context, tutorID, serviceID int64, weekdays []int, times []TimeOfDay) (uuid.UUID, error) {
	if len(weekdays) == 0 || len(times) == 0 {
		return uuid.Nil, apperror.Validation("at least one weekday and one time are required")
	}

	for _, wd := range weekdays {
		if wd < 0 || wd > 6 {
			return uuid.Nil, apperror.Validation("weekday must be between 0 and 6")
		}
	}

	for _, t := range times {
		if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
			return uuid.Nil, apperror.Validation("invalid time %02d:%02d", t.Hour, t.Minute)
		}
	}

	groupID := uuid.New()
	var templates []*model.RecurringAvailability

	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		templates = templates[:0]

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

		for _, wd := range weekdays {
			for _, t := range times {
				rec := &model.RecurringAvailability{
					GroupID:     groupID,
					TutorID:     tutorID,
					ServiceID:   serviceID,
					Weekday:     wd,
					StartHour:   t.Hour,
					StartMinute: t.Minute,
					IsActive:    true,
				}

				if err := tx.Recurring().Create(ctx, rec); err != nil {
					return err
				}
				templates = append(templates, rec)
			}
		}

		return nil
	})

	if err != nil {
		return uuid.Nil, err
	}

	now := s.clock.Now()
	total := 0
	for _, rec := range templates {
		count, err := s.generateForTemplate(ctx, rec, InitialWeeksAhead, now)
		if err != nil {
			s.logger.Error("Failed to generate initial slots",
				zap.Error(err),
				zap.Int64("recurring_id", rec.ID),
			)
			continue
		}
		total += count
	}

	s.logger.Info("Recurring group created",
		zap.String("group_id", groupID.String()),
		zap.Int64("tutor_id", tutorID),
		zap.Int64("service_id", serviceID),
		zap.Int("templates", len(templates)),
		zap.Int("slots_created", total),
	)

	return groupID, nil
}

// GenerateRecurring создаёт недостающие слоты по всем активным шаблонам на weeksAhead недель вперёд.
// Вызывается периодически планировщиком.
func (s *SlotService) GenerateRecurring(ctx context.Context, weeksAhead int) (int, error) {
	var templates []*model.RecurringAvailability
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		templates, err = tx.Recurring().ListActive(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("list active recurring: %w", err)
	}

	now := s.clock.Now()
	total := 0
	for _, rec := range templates {
		count, err := s.generateForTemplate(ctx, rec, weeksAhead, now)
		if err != nil {
			s.logger.Error("Failed to generate slots for template",
				zap.Error(err),
				zap.Int64("recurring_id", rec.ID),
			)
			continue
		}
		total += count
	}

	s.logger.Info("Generated slots for recurring templates",
		zap.Int("templates", len(templates)),
		zap.Int("slots_created", total),
	)

	return total, nil
}

// generateForTemplate создаёт слоты по шаблону, пропуская прошедшие и пересекающиеся
func (s *SlotService) generateForTemplate(ctx context.Context, rec *model.RecurringAvailability, weeksAhead int, now time.Time) (int, error) {
	count := 0
	for _, start := range rec.NextOccurrences(now, weeksAhead) {
		if start.Before(now) {
			continue
		}

		_, err := s.create(ctx, rec.TutorID, rec.ServiceID, start, now)
		switch {
		case err == nil:
			count++
			metrics.GeneratedSlots.Inc()
		case apperror.Is(err, apperror.KindConflict), apperror.Is(err, apperror.KindState):
			s.logger.Debug("Skipping recurring occurrence",
				zap.Int64("recurring_id", rec.ID),
				zap.Time("start", start),
				zap.String("reason", apperror.MessageOf(err)),
			)
		default:
			return count, err
		}
	}

	return count, nil
}

// ListRecurring возвращает шаблоны учителя
func (s *SlotService) ListRecurring(ctx context.Context, tutorID int64) ([]*model.RecurringAvailability, error) {
	var list []*model.RecurringAvailability
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		list, err = tx.Recurring().ListByTutor(ctx, tutorID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list recurring: %w", err)
	}
	return list, nil
}

// DeactivateRecurringGroup останавливает генерацию слотов по группе, созданные слоты остаются
func (s *SlotService) DeactivateRecurringGroup(ctx context.Context, tutorID int64, groupID uuid.UUID) error {
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		if err := checkGroupOwner(ctx, tx, tutorID, groupID); err != nil {
			return err
		}
		return tx.Recurring().SetActiveByGroupID(ctx, groupID, false)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Recurring group deactivated",
		zap.String("group_id", groupID.String()),
		zap.Int64("tutor_id", tutorID),
	)

	return nil
}

// DeleteRecurringGroup удаляет все шаблоны группы
func (s *SlotService) DeleteRecurringGroup(ctx context.Context, tutorID int64, groupID uuid.UUID) error {
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		if err := checkGroupOwner(ctx, tx, tutorID, groupID); err != nil {
			return err
		}
		return tx.Recurring().DeleteByGroupID(ctx, groupID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Recurring group deleted",
		zap.String("group_id", groupID.String()),
		zap.Int64("tutor_id", tutorID),
	)

	return nil
}

func checkGroupOwner(ctx context.Context, tx repository.Tx, tutorID int64, groupID uuid.UUID) error {
	templates, err := tx.Recurring().ListByGroupID(ctx, groupID)
	if err != nil {
		return fmt.Errorf("list recurring group: %w", err)
	}

	if len(templates) == 0 {
		return apperror.NotFound("recurring group not found")
	}

	if templates[0].TutorID != tutorID {
		return apperror.Authorization("recurring group does not belong to tutor")
	}

	return nil
}
