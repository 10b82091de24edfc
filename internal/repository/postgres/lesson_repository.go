package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
)

type LessonRepository struct {
	*base.Repository
}

func NewLessonRepository(db base.DBTX) *LessonRepository {
	return &LessonRepository{Repository: base.NewRepository(db)}
}

// Create создаёт занятие
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (date, title, absence)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, lesson.Date, lesson.Title, lesson.Absence).Scan(&lesson.ID, &lesson.CreatedAt)
	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает занятие по ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT id, date, title, absence, created_at FROM lessons WHERE id = $1`

	var lesson model.Lesson
	err := r.QueryRow(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.Date,
		&lesson.Title,
		&lesson.Absence,
		&lesson.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return &lesson, nil
}

// Update сохраняет тему занятия и отметку об отсутствии студента
func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	query := `UPDATE lessons SET title = $2, absence = $3 WHERE id = $1`

	_, err := r.ExecAffected(ctx, query, lesson.ID, lesson.Title, lesson.Absence)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}

	return nil
}

// GetTutorID находит учителя занятия через бронирование слота или запись подписки
func (r *LessonRepository) GetTutorID(ctx context.Context, lessonID int64) (int64, error) {
	query := `
		SELECT s.tutor_id
		FROM bookings b
		JOIN availabilities a ON a.id = b.availability_id
		JOIN services s ON s.id = a.service_id
		WHERE b.lesson_id = $1
		UNION ALL
		SELECT sub.tutor_id
		FROM appointments ap
		JOIN service_subscription_lists l ON l.id = ap.service_subscription_list_id
		JOIN subscriptions sub ON sub.id = l.subscription_id
		WHERE ap.lesson_id = $1
		LIMIT 1
	`

	var tutorID int64
	err := r.QueryRow(ctx, query, lessonID).Scan(&tutorID)
	if err != nil {
		if base.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get lesson tutor: %w", err)
	}

	return tutorID, nil
}

// Delete удаляет занятие вместе со ссылающимися на него бронированием или записью
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecAffected(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}

	return nil
}
