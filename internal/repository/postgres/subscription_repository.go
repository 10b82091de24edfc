package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const subscriptionColumns = `id, tutor_id, student_id, subject_id, start_date`

type SubscriptionRepository struct {
	*base.Repository
}

func NewSubscriptionRepository(db base.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{Repository: base.NewRepository(db)}
}

// Create создаёт подписку, повторная тройка учитель/студент/предмет даёт repository.ErrDuplicate
func (r *SubscriptionRepository) Create(ctx context.Context, sub *model.Subscription) error {
	query := `
		INSERT INTO subscriptions (tutor_id, student_id, subject_id, start_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, sub.TutorID, sub.StudentID, sub.SubjectID, sub.StartDate).Scan(&sub.ID)
	if err != nil {
		return insertErr("create subscription", err)
	}

	return nil
}

// GetByID получает подписку по ID
func (r *SubscriptionRepository) GetByID(ctx context.Context, id int64) (*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1`
	return scanSubscription(r.QueryRow(ctx, query, id), "get subscription by id")
}

// LockByID получает подписку и блокирует строку до конца транзакции
func (r *SubscriptionRepository) LockByID(ctx context.Context, id int64) (*model.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE id = $1 FOR UPDATE`
	return scanSubscription(r.QueryRow(ctx, query, id), "lock subscription")
}

// Find ищет подписку по учителю, студенту и предмету
func (r *SubscriptionRepository) Find(ctx context.Context, tutorID, studentID, subjectID int64) (*model.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE tutor_id = $1 AND student_id = $2 AND subject_id = $3
	`
	return scanSubscription(r.QueryRow(ctx, query, tutorID, studentID, subjectID), "find subscription")
}

// ListByUser получает подписки, где пользователь учитель или студент
func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int64) ([]*model.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE tutor_id = $1 OR student_id = $1
		ORDER BY start_date, id
	`

	rows, err := r.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions by user: %w", err)
	}
	defer rows.Close()

	var subs []*model.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows, "scan subscription")
		if err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}

	return subs, rows.Err()
}

func scanSubscription(row pgx.Row, op string) (*model.Subscription, error) {
	var sub model.Subscription
	err := row.Scan(&sub.ID, &sub.TutorID, &sub.StudentID, &sub.SubjectID, &sub.StartDate)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &sub, nil
}
