package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/clock"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"go.uber.org/zap"
)

// SubscriptionService оформляет долгосрочные подписки учителя и студента
type SubscriptionService struct {
	store  repository.Store
	clock  clock.Clock
	logger *zap.Logger
}

func NewSubscriptionService(store repository.Store, clk clock.Clock, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Create оформляет подписку по предмету. Оформляет учитель, студент
// должен хотя бы раз до этого записаться к нему на занятие.
func (s *SubscriptionService) Create(ctx context.Context, tutorID, studentID, subjectID int64) (*model.Subscription, error) {
	now := s.clock.Now()

	var sub *model.Subscription
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		tutor, err := tx.Users().GetByID(ctx, tutorID)
		if err != nil {
			return fmt.Errorf("get tutor: %w", err)
		}

		if tutor == nil || !tutor.IsTutor() {
			return apperror.Authorization("only tutors can create subscriptions")
		}

		student, err := tx.Users().GetByID(ctx, studentID)
		if err != nil {
			return fmt.Errorf("get student: %w", err)
		}

		if student == nil || !student.IsStudent() {
			return apperror.Validation("the user is not a student")
		}

		service, err := tx.Services().GetDefault(ctx, tutorID, subjectID)
		if err != nil {
			return fmt.Errorf("get default service: %w", err)
		}

		if service == nil {
			return apperror.Validation(apperror.MsgSubjectNotTaught)
		}

		booked, err := tx.Bookings().ExistsForTutorAndStudent(ctx, tutorID, studentID)
		if err != nil {
			return fmt.Errorf("check bookings: %w", err)
		}

		if !booked {
			return apperror.Validation(apperror.MsgNoPriorBooking)
		}

		existing, err := tx.Subscriptions().Find(ctx, tutorID, studentID, subjectID)
		if err != nil {
			return fmt.Errorf("find subscription: %w", err)
		}

		if existing != nil {
			return apperror.Conflict(apperror.MsgAlreadyExists)
		}

		created := &model.Subscription{
			TutorID:   tutorID,
			StudentID: studentID,
			SubjectID: subjectID,
			StartDate: now,
		}

		if err := tx.Subscriptions().Create(ctx, created); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperror.Wrap(apperror.KindConflict, err, apperror.MsgAlreadyExists)
			}
			return fmt.Errorf("create subscription: %w", err)
		}

		sub = created
		return nil
	})

	observe("create_subscription", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Subscription created",
		zap.Int64("subscription_id", sub.ID),
		zap.Int64("tutor_id", tutorID),
		zap.Int64("student_id", studentID),
		zap.Int64("subject_id", subjectID),
	)

	return sub, nil
}

// Get возвращает подписку по ID
func (s *SubscriptionService) Get(ctx context.Context, id int64) (*model.Subscription, error) {
	var sub *model.Subscription
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		sub, err = tx.Subscriptions().GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get subscription: %w", err)
		}
		if sub == nil {
			return apperror.NotFound("subscription not found")
		}
		return nil
	})
	return sub, err
}

// ListForUser возвращает подписки, где пользователь учитель или студент
func (s *SubscriptionService) ListForUser(ctx context.Context, userID int64) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		subs, err = tx.Subscriptions().ListByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return subs, nil
}
