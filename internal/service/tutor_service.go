package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"go.uber.org/zap"
)

// TutorService каталог предметов и услуг учителей
type TutorService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewTutorService(store repository.Store, logger *zap.Logger) *TutorService {
	return &TutorService{
		store:  store,
		logger: logger,
	}
}

// CreateSubject добавляет предмет в каталог
func (s *TutorService) CreateSubject(ctx context.Context, name string, category model.Category) (*model.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.Validation("subject name is required")
	}

	if !category.Valid() {
		return nil, apperror.Validation("unknown category %q", category)
	}

	subject := &model.Subject{Name: name, Category: category}
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		if err := tx.Subjects().Create(ctx, subject); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperror.Wrap(apperror.KindConflict, err, apperror.MsgAlreadyExists)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Subject created",
		zap.Int64("subject_id", subject.ID),
		zap.String("name", name),
	)

	return subject, nil
}

// ListSubjects возвращает все предметы
func (s *TutorService) ListSubjects(ctx context.Context) ([]*model.Subject, error) {
	var subjects []*model.Subject
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		subjects, err = tx.Subjects().List(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ValidateService проверяет параметры услуги
func ValidateService(numberOfHours, pricePerHour, sessionLength int) error {
	if numberOfHours < model.MinServiceHours || numberOfHours > model.MaxServiceHours {
		return apperror.Validation("number of hours must be between %d and %d", model.MinServiceHours, model.MaxServiceHours)
	}

	if pricePerHour < 0 {
		return apperror.Validation("price must not be negative")
	}

	if sessionLength < model.MinSessionLength || sessionLength > model.MaxSessionLength || sessionLength%model.SessionLengthStep != 0 {
		return apperror.Validation("session length must be between %d and %d minutes in steps of %d",
			model.MinSessionLength, model.MaxSessionLength, model.SessionLengthStep)
	}

	return nil
}

// CreateService создаёт услугу учителя по предмету
func (s *TutorService) CreateService(ctx context.Context, tutorID, subjectID int64, numberOfHours, pricePerHour, sessionLength int) (*model.Service, error) {
	if err := ValidateService(numberOfHours, pricePerHour, sessionLength); err != nil {
		return nil, err
	}

	service := &model.Service{
		TutorID:       tutorID,
		SubjectID:     subjectID,
		NumberOfHours: numberOfHours,
		PricePerHour:  pricePerHour,
		SessionLength: sessionLength,
	}

	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		tutor, err := tx.Users().GetByID(ctx, tutorID)
		if err != nil {
			return fmt.Errorf("get tutor: %w", err)
		}

		if tutor == nil || !tutor.IsTutor() {
			return apperror.Authorization("only tutors can create services")
		}

		subject, err := tx.Subjects().GetByID(ctx, subjectID)
		if err != nil {
			return fmt.Errorf("get subject: %w", err)
		}

		if subject == nil {
			return apperror.NotFound("subject not found")
		}

		if err := tx.Services().Create(ctx, service); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperror.Wrap(apperror.KindConflict, err, apperror.MsgAlreadyExists)
			}
			return fmt.Errorf("create service: %w", err)
		}

		return nil
	})

	observe("create_service", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Service created",
		zap.Int64("service_id", service.ID),
		zap.Int64("tutor_id", tutorID),
		zap.Int64("subject_id", subjectID),
		zap.Int("number_of_hours", numberOfHours),
	)

	return service, nil
}

// ListServices возвращает услуги учителя
func (s *TutorService) ListServices(ctx context.Context, tutorID int64) ([]*model.Service, error) {
	var services []*model.Service
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		services, err = tx.Services().ListByTutor(ctx, tutorID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return services, nil
}
