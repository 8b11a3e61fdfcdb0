package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/BruksfildServices01/booking-bridge/internal/domain/conversation"
)

const lastSeenTTL = 24 * time.Hour

// RedisLastSeen keeps the newest inbound message instant per session so the
// debounce poll stays off the database hot path.
type RedisLastSeen struct {
	rdb *redis.Client
}

func NewRedisLastSeen(rdb *redis.Client) *RedisLastSeen {
	return &RedisLastSeen{rdb: rdb}
}

func key(clientPhone string) string {
	return "conv:last:" + clientPhone
}

func (s *RedisLastSeen) Touch(ctx context.Context, clientPhone string, at time.Time) error {
	return s.rdb.Set(ctx, key(clientPhone), at.UnixNano(), lastSeenTTL).Err()
}

func (s *RedisLastSeen) Last(ctx context.Context, clientPhone string) (time.Time, error) {
	val, err := s.rdb.Get(ctx, key(clientPhone)).Result()
	if err == redis.Nil {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}

	nanos, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(0, nanos).UTC(), nil
}

// Compile-time check
var _ domain.LastSeen = (*RedisLastSeen)(nil)
