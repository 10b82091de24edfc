package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const serviceColumns = `id, tutor_id, subject_id, number_of_hours, price_per_hour, session_length, created_at`

type ServiceRepository struct {
	*base.Repository
}

func NewServiceRepository(db base.DBTX) *ServiceRepository {
	return &ServiceRepository{Repository: base.NewRepository(db)}
}

// Create создаёт новую услугу учителя
func (r *ServiceRepository) Create(ctx context.Context, service *model.Service) error {
	query := `
		INSERT INTO services (tutor_id, subject_id, number_of_hours, price_per_hour, session_length)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		service.TutorID,
		service.SubjectID,
		service.NumberOfHours,
		service.PricePerHour,
		service.SessionLength,
	).Scan(&service.ID, &service.CreatedAt)

	if err != nil {
		return insertErr("create service", err)
	}

	return nil
}

// GetByID получает услугу по ID
func (r *ServiceRepository) GetByID(ctx context.Context, id int64) (*model.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return scanService(r.QueryRow(ctx, query, id), "get service by id")
}

// GetDefault получает услугу на одно занятие по предмету
func (r *ServiceRepository) GetDefault(ctx context.Context, tutorID, subjectID int64) (*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE tutor_id = $1 AND subject_id = $2 AND number_of_hours = 1
	`
	return scanService(r.QueryRow(ctx, query, tutorID, subjectID), "get default service")
}

// ListByTutor получает все услуги учителя
func (r *ServiceRepository) ListByTutor(ctx context.Context, tutorID int64) ([]*model.Service, error) {
	query := `
		SELECT ` + serviceColumns + `
		FROM services
		WHERE tutor_id = $1
		ORDER BY subject_id, number_of_hours
	`

	rows, err := r.Query(ctx, query, tutorID)
	if err != nil {
		return nil, fmt.Errorf("list services by tutor: %w", err)
	}
	defer rows.Close()

	var services []*model.Service
	for rows.Next() {
		service, err := scanService(rows, "scan service")
		if err != nil {
			return nil, err
		}
		services = append(services, service)
	}

	return services, rows.Err()
}

func scanService(row pgx.Row, op string) (*model.Service, error) {
	var service model.Service
	err := row.Scan(
		&service.ID,
		&service.TutorID,
		&service.SubjectID,
		&service.NumberOfHours,
		&service.PricePerHour,
		&service.SessionLength,
		&service.CreatedAt,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &service, nil
}
