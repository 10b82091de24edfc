package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const appointmentSelect = `
	SELECT ap.id, ap.service_subscription_list_id, ap.lesson_id, l.subscription_id, ls.date, s.session_length
	FROM appointments ap
	JOIN service_subscription_lists l ON l.id = ap.service_subscription_list_id
	JOIN services s ON s.id = l.service_id
	JOIN lessons ls ON ls.id = ap.lesson_id
`

type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(db base.DBTX) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(db)}
}

// Create привязывает занятие к пакету часов
func (r *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (service_subscription_list_id, lesson_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, appointment.HourBlockID, appointment.LessonID).Scan(&appointment.ID)
	if err != nil {
		return insertErr("create appointment", err)
	}

	return nil
}

// GetByID получает запись вместе с подпиской и датой занятия
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*model.Appointment, error) {
	return scanAppointment(r.QueryRow(ctx, appointmentSelect+` WHERE ap.id = $1`, id), "get appointment by id")
}

// ListBySubscription получает все записи подписки по дате занятия
func (r *AppointmentRepository) ListBySubscription(ctx context.Context, subscriptionID int64) ([]*model.Appointment, error) {
	query := appointmentSelect + `
		WHERE l.subscription_id = $1
		ORDER BY ls.date, ap.id
	`

	rows, err := r.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*model.Appointment
	for rows.Next() {
		appointment, err := scanAppointment(rows, "scan appointment")
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	return appointments, rows.Err()
}

// Delete удаляет запись
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecAffected(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	return nil
}

func scanAppointment(row pgx.Row, op string) (*model.Appointment, error) {
	var appointment model.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.HourBlockID,
		&appointment.LessonID,
		&appointment.SubscriptionID,
		&appointment.LessonDate,
		&appointment.SessionLength,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &appointment, nil
}
