package service

import (
	"context"
	"time"

	"restaurant-ops/internal/domain"
)

const (
	ActivitySourceCache    = "cache"
	ActivitySourceDatabase = "database"
)

// ActivityService reads the per-day counters kept by the notification worker
// and falls back to counting rows when the cache has nothing for the day.
// Status-change counters exist only in the cache; rows do not record them.
type ActivityService struct {
	store    Store
	counters ActivityStore
}

func NewActivityService(store Store, counters ActivityStore) *ActivityService {
	return &ActivityService{store: store, counters: counters}
}

func (s *ActivityService) Daily(ctx context.Context, restaurantID int64, day time.Time) (*domain.DailyActivity, error) {
	if _, err := resolveRestaurant(ctx, s.store, restaurantID); err != nil {
		return nil, err
	}
	activity := &domain.DailyActivity{
		RestaurantID: restaurantID,
		Date:         day.Format("2006-01-02"),
	}

	if s.counters != nil {
		counters, err := s.counters.Daily(ctx, restaurantID, day)
		if err == nil && len(counters) > 0 {
			activity.Source = ActivitySourceCache
			activity.Counters = counters
			return activity, nil
		}
	}

	start, end := dayBounds(day)
	counters, err := s.store.CountActivityBetween(ctx, restaurantID, start, end)
	if err != nil {
		return nil, err
	}
	activity.Source = ActivitySourceDatabase
	activity.Counters = counters
	return activity, nil
}

var _ ActivityServiceInterface = (*ActivityService)(nil)
