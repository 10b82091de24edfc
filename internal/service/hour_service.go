package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"go.uber.org/zap"
)

// HourService распределяет занятия подписки по купленным пакетам часов
type HourService struct {
	store  repository.Store
	clock  clock.Clock
	logger *zap.Logger
}

func NewHourService(store repository.Store, clk clock.Clock, logger *zap.Logger) *HourService {
	return &HourService{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Hours возвращает всего, использовано и осталось часов по подписке
func (s *HourService) Hours(ctx context.Context, subscriptionID int64) (HourSummary, error) {
	var summary HourSummary
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		sub, err := tx.Subscriptions().GetByID(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}

		if sub == nil {
			return apperror.NotFound("subscription not found")
		}

		usage, err := tx.HourBlocks().ListUsage(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("list hour blocks: %w", err)
		}

		summary = summarize(usage)
		return nil
	})

	return summary, err
}

// Purchase добавляет в подписку пакет часов по услуге serviceID
func (s *HourService) Purchase(ctx context.Context, requesterID, subscriptionID, serviceID int64) (*model.HourBlock, error) {
	now := s.clock.Now()

	var block *model.HourBlock
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		sub, err := tx.Subscriptions().GetByID(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}

		if sub == nil {
			return apperror.NotFound("subscription not found")
		}

		if !sub.IsParticipant(requesterID) {
			return apperror.Authorization("not a participant of the subscription")
		}

		service, err := tx.Services().GetByID(ctx, serviceID)
		if err != nil {
			return fmt.Errorf("get service: %w", err)
		}

		if service == nil {
			return apperror.NotFound("service not found")
		}

		if service.TutorID != sub.TutorID || service.SubjectID != sub.SubjectID {
			return apperror.Validation("the service does not match the subscription")
		}

		b := &model.HourBlock{
			SubscriptionID: subscriptionID,
			ServiceID:      serviceID,
			PurchaseDate:   now,
		}

		if err := tx.HourBlocks().Create(ctx, b); err != nil {
			return fmt.Errorf("create hour block: %w", err)
		}

		block = b
		return nil
	})

	observe("purchase_hours", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Hours purchased",
		zap.Int64("block_id", block.ID),
		zap.Int64("subscription_id", subscriptionID),
		zap.Int64("service_id", serviceID),
	)

	return block, nil
}

// Allocate назначает занятие на дату date, расходуя час из самого раннего пакета со свободным местом.
// Нулевая date означает текущий момент.
func (s *HourService) Allocate(ctx context.Context, requesterID, subscriptionID int64, date time.Time) (*model.Appointment, error) {
	now := s.clock.Now()
	if date.IsZero() {
		date = now
	}

	var appointment *model.Appointment
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		// Блокировка подписки сериализует подсчёт часов и вставку записи
		sub, err := tx.Subscriptions().LockByID(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("lock subscription: %w", err)
		}

		if sub == nil {
			return apperror.NotFound("subscription not found")
		}

		if sub.TutorID != requesterID {
			return apperror.Authorization("only the tutor of the subscription can schedule sessions")
		}

		usage, err := tx.HourBlocks().ListUsage(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("list hour blocks: %w", err)
		}

		block, ok := firstOpenBlock(usage, sub.TutorID)
		if !ok {
			return apperror.ResourceExhausted(apperror.MsgNoHoursLeft)
		}

		lesson := &model.Lesson{Date: date}
		if err := tx.Lessons().Create(ctx, lesson); err != nil {
			return fmt.Errorf("create lesson: %w", err)
		}

		a := &model.Appointment{
			HourBlockID: block.Block.ID,
			LessonID:    lesson.ID,
		}

		if err := tx.Appointments().Create(ctx, a); err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		a.SubscriptionID = subscriptionID
		a.LessonDate = lesson.Date
		a.SessionLength = block.SessionLength
		appointment = a
		return nil
	})

	observe("allocate_hour", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Hour allocated",
		zap.Int64("appointment_id", appointment.ID),
		zap.Int64("subscription_id", subscriptionID),
		zap.Int64("block_id", appointment.HourBlockID),
		zap.Time("date", date),
	)

	return appointment, nil
}

// Deallocate удаляет запись и её занятие, освобождая час в пакете
func (s *HourService) Deallocate(ctx context.Context, requesterID, appointmentID int64) error {
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		appointment, err := tx.Appointments().GetByID(ctx, appointmentID)
		if err != nil {
			return fmt.Errorf("get appointment: %w", err)
		}

		if appointment == nil {
			return apperror.NotFound("appointment not found")
		}

		sub, err := tx.Subscriptions().LockByID(ctx, appointment.SubscriptionID)
		if err != nil {
			return fmt.Errorf("lock subscription: %w", err)
		}

		if sub == nil {
			return apperror.NotFound("subscription not found")
		}

		if sub.TutorID != requesterID {
			return apperror.Authorization("only the tutor of the subscription can cancel sessions")
		}

		if err := tx.Appointments().Delete(ctx, appointmentID); err != nil {
			return err
		}

		return tx.Lessons().Delete(ctx, appointment.LessonID)
	})

	observe("deallocate_hour", err)
	if err != nil {
		return err
	}

	s.logger.Info("Hour released", zap.Int64("appointment_id", appointmentID))

	return nil
}

// ListAppointments возвращает записи подписки для её участника
func (s *HourService) ListAppointments(ctx context.Context, requesterID, subscriptionID int64) ([]*model.Appointment, error) {
	var list []*model.Appointment
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		sub, err := tx.Subscriptions().GetByID(ctx, subscriptionID)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}

		if sub == nil {
			return apperror.NotFound("subscription not found")
		}

		if !sub.IsParticipant(requesterID) {
			return apperror.Authorization("not a participant of the subscription")
		}

		list, err = tx.Appointments().ListBySubscription(ctx, subscriptionID)
		if err != nil {
			return err
		}

		for _, a := range list {
			a.Lesson, err = tx.Lessons().GetByID(ctx, a.LessonID)
			if err != nil {
				return fmt.Errorf("get lesson: %w", err)
			}
		}
		return nil
	})

	return list, err
}
