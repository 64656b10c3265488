package storage

import (
	"context"
	"time"

	"restaurant-ops/internal/domain"
)

const reservationSelect = `
	SELECT id, restaurant_id, table_id, customer_id, reservation_time, party_size, status, COALESCE(notes, ''), created_at
	FROM reservations`

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := row.Scan(&res.ID, &res.RestaurantID, &res.TableID, &res.CustomerID,
		&res.ReservationTime, &res.PartySize, &res.Status, &res.Notes, &res.CreatedAt); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, reservation *domain.Reservation) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO reservations (restaurant_id, table_id, customer_id, reservation_time, party_size, status, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		reservation.RestaurantID, reservation.TableID, reservation.CustomerID, reservation.ReservationTime,
		reservation.PartySize, string(reservation.Status), reservation.Notes, reservation.CreatedAt,
	).Scan(&reservation.ID)
	return mapError(err)
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, err := scanReservation(r.q.QueryRowContext(ctx, reservationSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return res, nil
}

func (r *PostgresRepository) UpdateReservationStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	return expectOneRow(r.q.ExecContext(ctx, `UPDATE reservations SET status = $1 WHERE id = $2`, string(status), id))
}

func (r *PostgresRepository) ListReservationsBetween(ctx context.Context, restaurantID int64, start, end time.Time) ([]domain.Reservation, error) {
	rows, err := r.q.QueryContext(ctx, reservationSelect+`
		WHERE restaurant_id = $1 AND reservation_time >= $2 AND reservation_time < $3
		ORDER BY reservation_time, id`, restaurantID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, *res)
	}
	return reservations, rows.Err()
}

func (r *PostgresRepository) DeleteReservation(ctx context.Context, id int64) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id))
}
