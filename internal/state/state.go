package state

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateManager tracks when the price list was last fetched successfully, so
// a restart within the configured interval does not hammer the site again.
type StateManager interface {
	LastFetch(ctx context.Context) (time.Time, error)
	SetLastFetch(ctx context.Context, fetchedAt time.Time) error
}

type redisStateManager struct {
	redisClient *redis.Client
	key         string
}

func NewRedisStateManager(redisClient *redis.Client) StateManager {
	return &redisStateManager{
		redisClient: redisClient,
		key:         "coolpc:catalog:last_fetch",
	}
}

func (s *redisStateManager) LastFetch(ctx context.Context) (time.Time, error) {
	val, err := s.redisClient.Get(ctx, s.key).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, nil // No fetch recorded yet
		}
		return time.Time{}, fmt.Errorf("failed to get last fetch time: %w", err)
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last fetch time: %w", err)
	}

	return time.Unix(unix, 0), nil
}

func (s *redisStateManager) SetLastFetch(ctx context.Context, fetchedAt time.Time) error {
	err := s.redisClient.Set(ctx, s.key, fetchedAt.Unix(), 0).Err() // No expiration
	if err != nil {
		return fmt.Errorf("failed to set last fetch time: %w", err)
	}
	return nil
}
