// File: database/repository/counter/redis.go
package counterRepo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// counterTTL keeps day-scoped counters around long enough to cover the full
// booking day plus a grace window, then lets Redis reclaim them.
const counterTTL = 48 * time.Hour

// RedisCounterStore implements CounterStore on Redis INCR, the one operation
// the engine relies on being an atomic read-modify-write.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore constructs a CounterStore backed by the given client.
func NewRedisCounterStore(client *redis.Client) CounterStore {
	return &RedisCounterStore{client: client}
}

func counterKey(scope string) string {
	return "counter:" + scope
}

func (s *RedisCounterStore) Next(ctx context.Context, scope string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	key := counterKey(scope)
	val, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("counter increment failed for scope %s: %w", scope, err)
	}
	// Set the expiry on first use; repeated calls are harmless.
	if val == 1 {
		if err := s.client.Expire(ctx, key, counterTTL).Err(); err != nil {
			return 0, fmt.Errorf("counter expire failed for scope %s: %w", scope, err)
		}
	}
	return val, nil
}

func (s *RedisCounterStore) Peek(ctx context.Context, scope string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	val, err := s.client.Get(ctx, counterKey(scope)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("counter read failed for scope %s: %w", scope, err)
	}
	return val, nil
}
