package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
)

type SubjectRepository struct {
	*base.Repository
}

func NewSubjectRepository(db base.DBTX) *SubjectRepository {
	return &SubjectRepository{Repository: base.NewRepository(db)}
}

// Create создаёт новый предмет
func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	query := `
		INSERT INTO subjects (name, category)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, subject.Name, subject.Category).Scan(&subject.ID)
	if err != nil {
		return insertErr("create subject", err)
	}

	return nil
}

// GetByID получает предмет по ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*model.Subject, error) {
	query := `SELECT id, name, category FROM subjects WHERE id = $1`

	var subject model.Subject
	err := r.QueryRow(ctx, query, id).Scan(&subject.ID, &subject.Name, &subject.Category)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return &subject, nil
}

// List возвращает все предметы по категории и названию
func (r *SubjectRepository) List(ctx context.Context) ([]*model.Subject, error) {
	rows, err := r.Query(ctx, `SELECT id, name, category FROM subjects ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*model.Subject
	for rows.Next() {
		var subject model.Subject
		if err := rows.Scan(&subject.ID, &subject.Name, &subject.Category); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, &subject)
	}

	return subjects, rows.Err()
}
