package service

import (
	"context"
	"errors"
	"time"

	"restaurant-ops/internal/domain"
)

func notFoundAs(err error, kind string, id int64) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(kind, id)
	}
	return err
}

func resolveRestaurant(ctx context.Context, repo CatalogRepository, id int64) (*domain.Restaurant, error) {
	rest, err := repo.GetRestaurant(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "restaurant", id)
	}
	return rest, nil
}

func resolveTable(ctx context.Context, repo CatalogRepository, id int64) (*domain.DiningTable, error) {
	table, err := repo.GetTable(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "table", id)
	}
	return table, nil
}

func resolveCustomer(ctx context.Context, repo UserRepository, id int64) (*domain.UserAccount, error) {
	user, err := repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "customer", id)
	}
	return user, nil
}

// dayBounds returns the half-open interval [start, end) covering the
// calendar day of t in t's location. Postgres keeps microseconds, so an
// inclusive end at the last nanosecond would round up into the next day.
func dayBounds(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
