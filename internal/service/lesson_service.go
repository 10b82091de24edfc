package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/tutoring_scheduler/internal/apperror"
	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository"
	"go.uber.org/zap"
)

// LessonService ведение занятий учителем
type LessonService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewLessonService(store repository.Store, logger *zap.Logger) *LessonService {
	return &LessonService{
		store:  store,
		logger: logger,
	}
}

// Update задаёт тему занятия и отмечает отсутствие студента.
// Менять занятие может только учитель, к которому оно относится.
func (s *LessonService) Update(ctx context.Context, tutorID, lessonID int64, title string, absence bool) (*model.Lesson, error) {
	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) > model.MaxLessonTitleLength {
		return nil, apperror.Validation("lesson title must be at most %d characters", model.MaxLessonTitleLength)
	}

	var lesson *model.Lesson
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		l, err := tx.Lessons().GetByID(ctx, lessonID)
		if err != nil {
			return fmt.Errorf("get lesson: %w", err)
		}

		if l == nil {
			return apperror.NotFound("lesson not found")
		}

		owner, err := tx.Lessons().GetTutorID(ctx, lessonID)
		if err != nil {
			return err
		}

		if owner != tutorID {
			return apperror.Authorization("lesson belongs to another tutor")
		}

		l.Title = title
		l.Absence = absence
		if err := tx.Lessons().Update(ctx, l); err != nil {
			return err
		}

		lesson = l
		return nil
	})

	observe("update_lesson", err)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Lesson updated",
		zap.Int64("lesson_id", lessonID),
		zap.Int64("tutor_id", tutorID),
		zap.Bool("absence", absence),
	)

	return lesson, nil
}
