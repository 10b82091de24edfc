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

type BookingService struct {
	store  repository.Store
	clock  clock.Clock
	logger *zap.Logger
}

func NewBookingService(store repository.Store, clk clock.Clock, logger *zap.Logger) *BookingService {
	return &BookingService{
		store:  store,
		clock:  clk,
		logger: logger,
	}
}

// Create бронирует слот для студента и создаёт занятие
func (s *BookingService) Create(ctx context.Context, studentID, availabilityID int64) (*model.Booking, error) {
	now := s.clock.Now()

	var booking *model.Booking
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		student, err := tx.Users().GetByID(ctx, studentID)
		if err != nil {
			return fmt.Errorf("get student: %w", err)
		}

		if student == nil {
			return apperror.NotFound("user not found")
		}

		if !student.IsStudent() {
			return apperror.Authorization("only students can book slots")
		}

		av, err := tx.Availabilities().GetByID(ctx, availabilityID)
		if err != nil {
			return fmt.Errorf("get availability: %w", err)
		}

		if av == nil {
			return apperror.NotFound("availability not found")
		}

		existing, err := tx.Bookings().GetByAvailabilityID(ctx, availabilityID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}

		if existing != nil {
			return apperror.Conflict(apperror.MsgBookingExists)
		}

		if av.IsOutdated(now) {
			return apperror.State(apperror.MsgAvailabilityOutdated)
		}

		lesson := &model.Lesson{Date: av.Start}
		if err := tx.Lessons().Create(ctx, lesson); err != nil {
			return fmt.Errorf("create lesson: %w", err)
		}

		b := &model.Booking{
			AvailabilityID: availabilityID,
			StudentID:      studentID,
			LessonID:       lesson.ID,
		}

		// При гонке дубликат отсекает уникальный ключ bookings.availability_id
		if err := tx.Bookings().Create(ctx, b); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return apperror.Wrap(apperror.KindConflict, err, apperror.MsgBookingExists)
			}
			return fmt.Errorf("create booking: %w", err)
		}

		b.Availability = av
		booking = b
		return nil
	})

	observe("create_booking", err)
	if err != nil {
		s.logger.Debug("Booking rejected",
			zap.Int64("student_id", studentID),
			zap.Int64("availability_id", availabilityID),
			zap.Error(err),
		)
		return nil, err
	}

	s.logger.Info("Slot booked",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("student_id", studentID),
		zap.Int64("availability_id", availabilityID),
		zap.Int64("lesson_id", booking.LessonID),
	)

	return booking, nil
}

// Delete отменяет бронирование студента.
// Отменить может только сам студент и только пока слот не прошёл.
func (s *BookingService) Delete(ctx context.Context, studentID, bookingID int64) error {
	now := s.clock.Now()

	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		booking, err := tx.Bookings().GetByID(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("get booking: %w", err)
		}

		if booking == nil {
			return apperror.NotFound("booking not found")
		}

		av, err := tx.Availabilities().GetByID(ctx, booking.AvailabilityID)
		if err != nil {
			return fmt.Errorf("get availability: %w", err)
		}

		if av == nil {
			return apperror.NotFound("availability not found")
		}

		if booking.StudentID != studentID {
			return apperror.Authorization("booking belongs to another student")
		}

		if av.IsOutdated(now) {
			return apperror.State(apperror.MsgAvailabilityOutdated)
		}

		if err := tx.Bookings().Delete(ctx, bookingID); err != nil {
			return err
		}

		return tx.Lessons().Delete(ctx, booking.LessonID)
	})

	observe("delete_booking", err)
	if err != nil {
		return err
	}

	s.logger.Info("Booking cancelled",
		zap.Int64("booking_id", bookingID),
		zap.Int64("student_id", studentID),
	)

	return nil
}

// ListForStudent возвращает бронирования студента вместе со слотами и занятиями
func (s *BookingService) ListForStudent(ctx context.Context, studentID int64) ([]*model.Booking, error) {
	var bookings []*model.Booking
	err := s.store.InTx(ctx, func(tx repository.Tx) error {
		var err error
		bookings, err = tx.Bookings().ListByStudent(ctx, studentID)
		if err != nil {
			return err
		}

		for _, b := range bookings {
			b.Lesson, err = tx.Lessons().GetByID(ctx, b.LessonID)
			if err != nil {
				return fmt.Errorf("get lesson: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
