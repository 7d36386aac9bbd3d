package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/MenuQR-api/internal/domain/entity"
	"github.com/jhoicas/MenuQR-api/internal/domain/repository"
)

var _ repository.SubscriptionHistoryRepository = (*SubscriptionHistoryRepo)(nil)

// SubscriptionHistoryRepo libro de períodos de suscripción (solo INSERT y SELECT).
type SubscriptionHistoryRepo struct {
	db Querier
}

func NewSubscriptionHistoryRepository(db Querier) *SubscriptionHistoryRepo {
	return &SubscriptionHistoryRepo{db: db}
}

func (r *SubscriptionHistoryRepo) Create(ctx context.Context, h *entity.SubscriptionHistory) error {
	query := `
		INSERT INTO subscription_history (id, restaurant_id, plan, start_date, end_date, amount, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query, h.ID, h.RestaurantID, h.Plan, h.StartDate, h.EndDate, h.Amount, h.Notes, h.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert subscription history: %w", err)
	}
	return nil
}

func (r *SubscriptionHistoryRepo) ListByRestaurant(ctx context.Context, restaurantID string) ([]*entity.SubscriptionHistory, error) {
	query := `
		SELECT id, restaurant_id, plan, start_date, end_date, amount, notes, created_at
		FROM subscription_history WHERE restaurant_id = $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list subscription history: %w", err)
	}
	defer rows.Close()
	var list []*entity.SubscriptionHistory
	for rows.Next() {
		var h entity.SubscriptionHistory
		if err := rows.Scan(&h.ID, &h.RestaurantID, &h.Plan, &h.StartDate, &h.EndDate, &h.Amount, &h.Notes, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subscription history: %w", err)
		}
		list = append(list, &h)
	}
	return list, rows.Err()
}
