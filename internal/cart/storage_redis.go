package cart

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	linesKeyPrefix = "cart:lines:"
	countKeyPrefix = "cart:count:"
	totalKeyPrefix = "cart:total:"
)

// RedisStorage keeps each session's cart in Redis under the three-key
// layout. Keys carry no TTL; the cart lives until cleared, like browser
// storage.
type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func (s *RedisStorage) Save(ctx context.Context, session, lines, count, total string) error {
	return s.rdb.MSet(ctx,
		linesKeyPrefix+session, lines,
		countKeyPrefix+session, count,
		totalKeyPrefix+session, total,
	).Err()
}

func (s *RedisStorage) LoadLines(ctx context.Context, session string) (string, error) {
	v, err := s.rdb.Get(ctx, linesKeyPrefix+session).Result()
	if err == redis.Nil {
		return "", nil
	}
	return v, err
}
