package storage

import (
	"context"
	"time"

	"restaurant-ops/internal/domain"
)

func (r *PostgresRepository) CountActivityBetween(ctx context.Context, restaurantID int64, start, end time.Time) (map[string]int64, error) {
	var orders, payments, reservations int64
	err := r.q.QueryRowContext(ctx, `
		SELECT
			(SELECT count(*) FROM orders
				WHERE restaurant_id = $1 AND created_at >= $2 AND created_at < $3),
			(SELECT count(*) FROM payments p JOIN orders o ON o.id = p.order_id
				WHERE o.restaurant_id = $1 AND p.paid_at >= $2 AND p.paid_at < $3),
			(SELECT count(*) FROM reservations
				WHERE restaurant_id = $1 AND created_at >= $2 AND created_at < $3)`,
		restaurantID, start, end,
	).Scan(&orders, &payments, &reservations)
	if err != nil {
		return nil, mapError(err)
	}
	return map[string]int64{
		domain.EventOrderCreated:       orders,
		domain.EventPaymentRecorded:    payments,
		domain.EventReservationCreated: reservations,
	}, nil
}
