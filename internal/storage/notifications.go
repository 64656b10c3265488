package storage

import (
	"context"

	"restaurant-ops/internal/domain"
)

func (r *PostgresRepository) CreateNotification(ctx context.Context, n *domain.Notification) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO notifications (recipient_id, channel, message, delivered, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		n.RecipientID, n.Channel, n.Message, n.Delivered, n.CreatedAt,
	).Scan(&n.ID)
	return mapError(err)
}

func (r *PostgresRepository) ListNotifications(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, recipient_id, channel, message, delivered, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC, id DESC`, recipientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Channel, &n.Message, &n.Delivered, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PostgresRepository) MarkNotificationDelivered(ctx context.Context, id int64) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx, `UPDATE notifications SET delivered = TRUE WHERE id = $1`, id))
}
