package postgres

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tutoring_scheduler/internal/model"
	"github.com/Freeeeeet/tutoring_scheduler/internal/repository/base"
)

// HourBlockRepository работает с купленными пакетами часов (service_subscription_lists)
type HourBlockRepository struct {
	*base.Repository
}

func NewHourBlockRepository(db base.DBTX) *HourBlockRepository {
	return &HourBlockRepository{Repository: base.NewRepository(db)}
}

// Create добавляет купленный пакет в подписку
func (r *HourBlockRepository) Create(ctx context.Context, block *model.HourBlock) error {
	query := `
		INSERT INTO service_subscription_lists (subscription_id, service_id, purchase_date)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.QueryRow(ctx, query, block.SubscriptionID, block.ServiceID, block.PurchaseDate).Scan(&block.ID)
	if err != nil {
		return fmt.Errorf("create hour block: %w", err)
	}

	return nil
}

// ListUsage получает пакеты подписки с числом израсходованных часов
func (r *HourBlockRepository) ListUsage(ctx context.Context, subscriptionID int64) ([]model.HourBlockUsage, error) {
	query := `
		SELECT l.id, l.subscription_id, l.service_id, l.purchase_date,
		       s.tutor_id, s.number_of_hours, s.session_length,
		       (SELECT COUNT(*) FROM appointments ap WHERE ap.service_subscription_list_id = l.id)
		FROM service_subscription_lists l
		JOIN services s ON s.id = l.service_id
		WHERE l.subscription_id = $1
		ORDER BY l.purchase_date, l.id
	`

	rows, err := r.Query(ctx, query, subscriptionID)
	if err != nil {
		return nil, fmt.Errorf("list hour blocks: %w", err)
	}
	defer rows.Close()

	var usage []model.HourBlockUsage
	for rows.Next() {
		var u model.HourBlockUsage
		err := rows.Scan(
			&u.Block.ID,
			&u.Block.SubscriptionID,
			&u.Block.ServiceID,
			&u.Block.PurchaseDate,
			&u.TutorID,
			&u.NumberOfHours,
			&u.SessionLength,
			&u.Used,
		)
		if err != nil {
			return nil, fmt.Errorf("scan hour block: %w", err)
		}
		usage = append(usage, u)
	}

	return usage, rows.Err()
}
