package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const recurringColumns = `id, group_id, tutor_id, service_id, weekday, start_hour, start_minute, is_active, created_at, updated_at`

// RecurringRepository управляет шаблонами еженедельных слотов
type RecurringRepository struct {
	*base.Repository
}

func NewRecurringRepository(db base.DBTX) *RecurringRepository {
	return &RecurringRepository{Repository: base.NewRepository(db)}
}

// Create создаёт новый шаблон
func (r *RecurringRepository) Create(ctx context.Context, rec *model.RecurringAvailability) error {
	query := `
		INSERT INTO recurring_availabilities (group_id, tutor_id, service_id, weekday, start_hour, start_minute, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.QueryRow(
		ctx,
		query,
		rec.GroupID,
		rec.TutorID,
		rec.ServiceID,
		rec.Weekday,
		rec.StartHour,
		rec.StartMinute,
		rec.IsActive,
	).Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create recurring availability: %w", err)
	}

	return nil
}

// GetByID получает шаблон по ID
func (r *RecurringRepository) GetByID(ctx context.Context, id int64) (*model.RecurringAvailability, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_availabilities WHERE id = $1`

	rec, err := scanRecurring(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recurring availability by id: %w", err)
	}

	return rec, nil
}

// ListByTutor получает все шаблоны учителя
func (r *RecurringRepository) ListByTutor(ctx context.Context, tutorID int64) ([]*model.RecurringAvailability, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_availabilities
		WHERE tutor_id = $1
		ORDER BY weekday, start_hour, start_minute
	`
	return r.list(ctx, "list recurring availabilities by tutor", query, tutorID)
}

// ListByGroupID получает все шаблоны группы
func (r *RecurringRepository) ListByGroupID(ctx context.Context, groupID uuid.UUID) ([]*model.RecurringAvailability, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_availabilities
		WHERE group_id = $1
		ORDER BY weekday, start_hour, start_minute
	`
	return r.list(ctx, "list recurring availabilities by group", query, groupID)
}

// ListActive получает все активные шаблоны
func (r *RecurringRepository) ListActive(ctx context.Context) ([]*model.RecurringAvailability, error) {
	query := `
		SELECT ` + recurringColumns + `
		FROM recurring_availabilities
		WHERE is_active
		ORDER BY tutor_id, weekday, start_hour, start_minute
	`
	return r.list(ctx, "list active recurring availabilities", query)
}

// SetActiveByGroupID включает или выключает все шаблоны группы
func (r *RecurringRepository) SetActiveByGroupID(ctx context.Context, groupID uuid.UUID, active bool) error {
	query := `UPDATE recurring_availabilities SET is_active = $2, updated_at = NOW() WHERE group_id = $1`

	if _, err := r.ExecAffected(ctx, query, groupID, active); err != nil {
		return fmt.Errorf("set recurring group active: %w", err)
	}

	return nil
}

// DeleteByGroupID удаляет все шаблоны группы
func (r *RecurringRepository) DeleteByGroupID(ctx context.Context, groupID uuid.UUID) error {
	if _, err := r.ExecAffected(ctx, `DELETE FROM recurring_availabilities WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("delete recurring group: %w", err)
	}

	return nil
}

func (r *RecurringRepository) list(ctx context.Context, op, query string, args ...any) ([]*model.RecurringAvailability, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var recs []*model.RecurringAvailability
	for rows.Next() {
		rec, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring availability: %w", err)
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

func scanRecurring(row pgx.Row) (*model.RecurringAvailability, error) {
	rec := &model.RecurringAvailability{}
	err := row.Scan(
		&rec.ID,
		&rec.GroupID,
		&rec.TutorID,
		&rec.ServiceID,
		&rec.Weekday,
		&rec.StartHour,
		&rec.StartMinute,
		&rec.IsActive,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}
