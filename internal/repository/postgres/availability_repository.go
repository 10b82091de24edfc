package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const availabilitySelect = `
	SELECT a.id, a.service_id, a.start, a.created_at, s.tutor_id, s.subject_id, s.session_length
	FROM availabilities a
	JOIN services s ON s.id = a.service_id
`

type AvailabilityRepository struct {
	*base.Repository
}

func NewAvailabilityRepository(db base.DBTX) *AvailabilityRepository {
	return &AvailabilityRepository{Repository: base.NewRepository(db)}
}

// Create создаёт новый слот
func (r *AvailabilityRepository) Create(ctx context.Context, availability *model.Availability) error {
	query := `
		INSERT INTO availabilities (service_id, start)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, availability.ServiceID, availability.Start).
		Scan(&availability.ID, &availability.CreatedAt)
	if err != nil {
		return insertErr("create availability", err)
	}

	return nil
}

// GetByID получает слот вместе с данными услуги
func (r *AvailabilityRepository) GetByID(ctx context.Context, id int64) (*model.Availability, error) {
	return scanAvailability(r.QueryRow(ctx, availabilitySelect+` WHERE a.id = $1`, id), "get availability by id")
}

// ListByTutor получает слоты учителя по всем его услугам с началом в [from, to)
func (r *AvailabilityRepository) ListByTutor(ctx context.Context, tutorID int64, from, to time.Time) ([]*model.Availability, error) {
	query := availabilitySelect + `
		WHERE s.tutor_id = $1 AND a.start >= $2 AND a.start < $3
		ORDER BY a.start, a.id
	`

	rows, err := r.Query(ctx, query, tutorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list availabilities by tutor: %w", err)
	}
	defer rows.Close()

	var availabilities []*model.Availability
	for rows.Next() {
		availability, err := scanAvailability(rows, "scan availability")
		if err != nil {
			return nil, err
		}
		availabilities = append(availabilities, availability)
	}

	return availabilities, rows.Err()
}

// Delete удаляет слот, бронирование удаляется каскадно
func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecAffected(ctx, `DELETE FROM availabilities WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete availability: %w", err)
	}

	return nil
}

func scanAvailability(row pgx.Row, op string) (*model.Availability, error) {
	var availability model.Availability
	err := row.Scan(
		&availability.ID,
		&availability.ServiceID,
		&availability.Start,
		&availability.CreatedAt,
		&availability.TutorID,
		&availability.SubjectID,
		&availability.SessionLength,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &availability, nil
}
