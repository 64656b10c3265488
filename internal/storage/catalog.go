package storage

import (
	"context"

	"restaurant-ops/internal/domain"

	"github.com/lib/pq"
)

const restaurantColumns = `id, name, COALESCE(description, ''), COALESCE(address, ''), COALESCE(phone, ''),
	COALESCE(to_char(opening_time, 'HH24:MI'), ''), COALESCE(to_char(closing_time, 'HH24:MI'), '')`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row rowScanner) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	if err := row.Scan(&rest.ID, &rest.Name, &rest.Description, &rest.Address, &rest.Phone,
		&rest.OpeningTime, &rest.ClosingTime); err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) CreateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO restaurants (name, description, address, phone, opening_time, closing_time)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::time, NULLIF($6, '')::time)
		RETURNING id`,
		rest.Name, rest.Description, rest.Address, rest.Phone, rest.OpeningTime, rest.ClosingTime,
	).Scan(&rest.ID)
	return mapError(err)
}

func (r *PostgresRepository) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	rest, err := scanRestaurant(r.q.QueryRowContext(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return rest, nil
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+restaurantColumns+` FROM restaurants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, *rest)
	}
	return restaurants, rows.Err()
}

func (r *PostgresRepository) UpdateRestaurant(ctx context.Context, rest *domain.Restaurant) error {
	return expectOneRow(r.q.ExecContext(ctx, `
		UPDATE restaurants
		SET name = $1, description = $2, address = $3, phone = $4,
			opening_time = NULLIF($5, '')::time, closing_time = NULLIF($6, '')::time
		WHERE id = $7`,
		rest.Name, rest.Description, rest.Address, rest.Phone, rest.OpeningTime, rest.ClosingTime, rest.ID))
}

// DeleteRestaurant relies on ON DELETE CASCADE for tables, categories and
// menu items. Orders and reservations restrict the delete.
func (r *PostgresRepository) DeleteRestaurant(ctx context.Context, id int64) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id))
}

func (r *PostgresRepository) CreateTable(ctx context.Context, table *domain.DiningTable) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO dining_tables (restaurant_id, code, capacity, outdoor)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		table.RestaurantID, table.Code, table.Capacity, table.Outdoor,
	).Scan(&table.ID)
	return mapError(err)
}

func (r *PostgresRepository) GetTable(ctx context.Context, id int64) (*domain.DiningTable, error) {
	var table domain.DiningTable
	err := r.q.QueryRowContext(ctx, `
		SELECT id, restaurant_id, COALESCE(code, ''), capacity, outdoor
		FROM dining_tables WHERE id = $1`, id).
		Scan(&table.ID, &table.RestaurantID, &table.Code, &table.Capacity, &table.Outdoor)
	if err != nil {
		return nil, mapError(err)
	}
	return &table, nil
}

func (r *PostgresRepository) ListTables(ctx context.Context, restaurantID int64) ([]domain.DiningTable, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, restaurant_id, COALESCE(code, ''), capacity, outdoor
		FROM dining_tables WHERE restaurant_id = $1 ORDER BY id`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := []domain.DiningTable{}
	for rows.Next() {
		var table domain.DiningTable
		if err := rows.Scan(&table.ID, &table.RestaurantID, &table.Code, &table.Capacity, &table.Outdoor); err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, rows.Err()
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, category *domain.MenuCategory) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO menu_categories (restaurant_id, name) VALUES ($1, $2) RETURNING id`,
		category.RestaurantID, category.Name,
	).Scan(&category.ID)
	return mapError(err)
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int64) (*domain.MenuCategory, error) {
	var category domain.MenuCategory
	err := r.q.QueryRowContext(ctx, `
		SELECT id, restaurant_id, COALESCE(name, '') FROM menu_categories WHERE id = $1`, id).
		Scan(&category.ID, &category.RestaurantID, &category.Name)
	if err != nil {
		return nil, mapError(err)
	}
	return &category, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID int64) ([]domain.MenuCategory, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, restaurant_id, COALESCE(name, '')
		FROM menu_categories WHERE restaurant_id = $1 ORDER BY id`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []domain.MenuCategory{}
	for rows.Next() {
		var category domain.MenuCategory
		if err := rows.Scan(&category.ID, &category.RestaurantID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

const menuItemSelect = `
	SELECT mi.id, mi.category_id, mc.restaurant_id, mi.name, COALESCE(mi.description, ''), mi.price
	FROM menu_items mi
	JOIN menu_categories mc ON mc.id = mi.category_id`

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := row.Scan(&item.ID, &item.CategoryID, &item.RestaurantID, &item.Name, &item.Description, &item.Price); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.q.QueryRowContext(ctx, `
		INSERT INTO menu_items (category_id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		item.CategoryID, item.Name, item.Description, item.Price,
	).Scan(&item.ID)
	return mapError(err)
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int64) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.q.QueryRowContext(ctx, menuItemSelect+` WHERE mi.id = $1`, id))
	if err != nil {
		return nil, mapError(err)
	}
	return item, nil
}

// GetMenuItems returns the items found among ids; missing ids are simply
// absent from the map.
func (r *PostgresRepository) GetMenuItems(ctx context.Context, ids []int64) (map[int64]domain.MenuItem, error) {
	items := make(map[int64]domain.MenuItem, len(ids))
	if len(ids) == 0 {
		return items, nil
	}
	rows, err := r.q.QueryContext(ctx, menuItemSelect+` WHERE mi.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items[item.ID] = *item
	}
	return items, rows.Err()
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context, categoryID int64) ([]domain.MenuItem, error) {
	rows, err := r.q.QueryContext(ctx, menuItemSelect+` WHERE mi.category_id = $1 ORDER BY mi.id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return expectOneRow(r.q.ExecContext(ctx, `
		UPDATE menu_items SET name = $1, description = $2, price = $3 WHERE id = $4`,
		item.Name, item.Description, item.Price, item.ID))
}
