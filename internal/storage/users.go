package storage

import (
	"context"

	"restaurant-ops/internal/domain"
)

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.UserAccount) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO users (full_name, email, phone, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		user.FullName, user.Email, user.Phone, string(user.Role),
	).Scan(&user.ID)
	return mapError(err)
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int64) (*domain.UserAccount, error) {
	var user domain.UserAccount
	err := r.q.QueryRowContext(ctx, `
		SELECT id, full_name, email, phone, role FROM users WHERE id = $1`, id).
		Scan(&user.ID, &user.FullName, &user.Email, &user.Phone, &user.Role)
	if err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

func (r *PostgresRepository) ListUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.UserAccount, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, full_name, email, phone, role FROM users WHERE role = $1 ORDER BY id`, string(role))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.UserAccount{}
	for rows.Next() {
		var user domain.UserAccount
		if err := rows.Scan(&user.ID, &user.FullName, &user.Email, &user.Phone, &user.Role); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
