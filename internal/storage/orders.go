package storage

import (
	"context"
	"database/sql"
	"time"

	"restaurant-ops/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const orderSelect = `
	SELECT o.id, o.restaurant_id, o.table_id, o.customer_id, o.status, o.created_at, o.total,
		p.id, p.amount, p.provider, p.currency, p.paid_at
	FROM orders o
	LEFT JOIN payments p ON p.order_id = o.id`

func scanOrder(row rowScanner) (*domain.CustomerOrder, error) {
	var (
		order     domain.CustomerOrder
		paymentID sql.NullInt64
		amount    decimal.NullDecimal
		provider  sql.NullString
		currency  sql.NullString
		paidAt    sql.NullTime
	)
	if err := row.Scan(&order.ID, &order.RestaurantID, &order.TableID, &order.CustomerID,
		&order.Status, &order.CreatedAt, &order.Total,
		&paymentID, &amount, &provider, &currency, &paidAt); err != nil {
		return nil, err
	}
	if paymentID.Valid {
		order.Payment = &domain.Payment{
			ID:       paymentID.Int64,
			OrderID:  order.ID,
			Amount:   amount.Decimal,
			Provider: provider.String,
			Currency: currency.String,
			PaidAt:   paidAt.Time,
		}
	}
	order.Items = []domain.OrderItem{}
	return &order, nil
}

// CreateOrder inserts the order row and its items together.
func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.CustomerOrder) error {
	return r.withTx(ctx, false, func(tx *PostgresRepository) error {
		if err := tx.q.QueryRowContext(ctx, `
			INSERT INTO orders (restaurant_id, table_id, customer_id, status, created_at, total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			order.RestaurantID, order.TableID, order.CustomerID, string(order.Status), order.CreatedAt, order.Total,
		).Scan(&order.ID); err != nil {
			return mapError(err)
		}

		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.q.QueryRowContext(ctx, `
				INSERT INTO order_items (order_id, menu_item_id, quantity, price)
				VALUES ($1, $2, $3, $4)
				RETURNING id`,
				order.ID, item.MenuItemID, item.Quantity, item.Price,
			).Scan(&item.ID); err != nil {
				return mapError(err)
			}
		}
		return nil
	})
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int64) (*domain.CustomerOrder, error) {
	order, err := scanOrder(r.q.QueryRowContext(ctx, orderSelect+` WHERE o.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	if err := r.attachItems(ctx, []*domain.CustomerOrder{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	return expectOneRow(r.q.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, string(status), id))
}

func (r *PostgresRepository) ListOrdersBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.CustomerOrder, error) {
	rows, err := r.q.QueryContext(ctx, orderSelect+`
		WHERE o.restaurant_id = $1 AND o.created_at >= $2 AND o.created_at < $3
		ORDER BY o.created_at, o.id`, restaurantID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*domain.CustomerOrder
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	result := make([]domain.CustomerOrder, 0, len(orders))
	for _, order := range orders {
		result = append(result, *order)
	}
	return result, nil
}

func (r *PostgresRepository) attachItems(ctx context.Context, orders []*domain.CustomerOrder) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.CustomerOrder, len(orders))
	ids := make([]int64, 0, len(orders))
	for _, order := range orders {
		byID[order.ID] = order
		ids = append(ids, order.ID)
	}

	rows, err := r.q.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.menu_item_id, mi.name, oi.quantity, oi.price
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.MenuItemID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return err
		}
		if order, ok := byID[item.OrderID]; ok {
			order.Items = append(order.Items, item)
		}
	}
	return rows.Err()
}

// DeleteOrder cascades to order items and the payment.
func (r *PostgresRepository) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id))
}

// SavePayment keeps at most one payment per order; a second call replaces
// the stored row.
func (r *PostgresRepository) SavePayment(ctx context.Context, payment *domain.Payment) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO payments (order_id, amount, provider, currency, paid_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (order_id) DO UPDATE
		SET amount = EXCLUDED.amount, provider = EXCLUDED.provider,
			currency = EXCLUDED.currency, paid_at = EXCLUDED.paid_at
		RETURNING id`,
		payment.OrderID, payment.Amount, payment.Provider, payment.Currency, payment.PaidAt,
	).Scan(&payment.ID)
	return mapError(err)
}
