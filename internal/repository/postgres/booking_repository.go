package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, availability_id, student_id, lesson_id, create_date`

type BookingRepository struct {
	*base.Repository
}

func NewBookingRepository(db base.DBTX) *BookingRepository {
	return &BookingRepository{Repository: base.NewRepository(db)}
}

// Create создаёт новое бронирование.
// Повторное бронирование того же слота возвращает repository.ErrDuplicate.
func (r *BookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (availability_id, student_id, lesson_id)
		VALUES ($1, $2, $3)
		RETURNING id, create_date
	`

	err := r.QueryRow(
		ctx, query,
		booking.AvailabilityID,
		booking.StudentID,
		booking.LessonID,
	).Scan(&booking.ID, &booking.CreateDate)

	if err != nil {
		return insertErr("create booking", err)
	}

	return nil
}

// GetByID получает бронирование по ID
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.QueryRow(ctx, query, id), "get booking by id")
}

// GetByAvailabilityID получает бронирование слота
func (r *BookingRepository) GetByAvailabilityID(ctx context.Context, availabilityID int64) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE availability_id = $1`
	return scanBooking(r.QueryRow(ctx, query, availabilityID), "get booking by availability")
}

// ListByStudent получает все бронирования студента вместе со слотами
func (r *BookingRepository) ListByStudent(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	query := `
		SELECT b.id, b.availability_id, b.student_id, b.lesson_id, b.create_date,
		       a.id, a.service_id, a.start, a.created_at, s.tutor_id, s.subject_id, s.session_length
		FROM bookings b
		JOIN availabilities a ON a.id = b.availability_id
		JOIN services s ON s.id = a.service_id
		WHERE b.student_id = $1
		ORDER BY a.start
	`

	rows, err := r.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list bookings by student: %w", err)
	}
	defer rows.Close()

	var bookings []*model.Booking
	for rows.Next() {
		var booking model.Booking
		var av model.Availability
		err := rows.Scan(
			&booking.ID,
			&booking.AvailabilityID,
			&booking.StudentID,
			&booking.LessonID,
			&booking.CreateDate,
			&av.ID,
			&av.ServiceID,
			&av.Start,
			&av.CreatedAt,
			&av.TutorID,
			&av.SubjectID,
			&av.SessionLength,
		)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		booking.Availability = &av
		bookings = append(bookings, &booking)
	}

	return bookings, rows.Err()
}

// ExistsForTutorAndStudent проверяет, бронировал ли студент когда-либо занятие у учителя
func (r *BookingRepository) ExistsForTutorAndStudent(ctx context.Context, tutorID, studentID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM bookings b
			JOIN availabilities a ON a.id = b.availability_id
			JOIN services s ON s.id = a.service_id
			WHERE s.tutor_id = $1 AND b.student_id = $2
		)
	`

	var exists bool
	if err := r.QueryRow(ctx, query, tutorID, studentID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check booking exists: %w", err)
	}

	return exists, nil
}

// Delete удаляет бронирование
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.ExecAffected(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}

	return nil
}

func scanBooking(row pgx.Row, op string) (*model.Booking, error) {
	var booking model.Booking
	err := row.Scan(
		&booking.ID,
		&booking.AvailabilityID,
		&booking.StudentID,
		&booking.LessonID,
		&booking.CreateDate,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &booking, nil
}
