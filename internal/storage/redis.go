package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"restaurant-ops/internal/domain"
	"restaurant-ops/internal/service"

	"github.com/redis/go-redis/v9"
)

// RedisActivityStore keeps one hash per restaurant and day, with a counter
// field per event type.
type RedisActivityStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisActivityStore(client *redis.Client, ttl time.Duration) *RedisActivityStore {
	return &RedisActivityStore{Client: client, TTL: ttl}
}

var _ service.ActivityStore = (*RedisActivityStore)(nil)

func (s *RedisActivityStore) ActivityKey(restaurantID int64, day time.Time) string {
	return fmt.Sprintf("activity:daily:%s:%d", day.Format("2006-01-02"), restaurantID)
}

func (s *RedisActivityStore) Record(ctx context.Context, event domain.Event) error {
	key := s.ActivityKey(event.RestaurantID, event.Timestamp)
	pipe := s.Client.TxPipeline()
	pipe.HIncrBy(ctx, key, event.Type, 1)
	if s.TTL > 0 {
		pipe.Expire(ctx, key, s.TTL)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisActivityStore) Daily(ctx context.Context, restaurantID int64, day time.Time) (map[string]int64, error) {
	raw, err := s.Client.HGetAll(ctx, s.ActivityKey(restaurantID, day)).Result()
	if err != nil {
		return nil, err
	}
	counters := make(map[string]int64, len(raw))
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		counters[field] = n
	}
	return counters, nil
}
