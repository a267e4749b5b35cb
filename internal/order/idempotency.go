package order

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard decides whether a submission under an idempotency key is the first
// one. A replayed checkout (network retry) loses the lock and gets the
// already-created order instead of a duplicate.
type Guard interface {
	TryLock(ctx context.Context, key string) (bool, error)
}

type RedisGuard struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl}
}

func (g *RedisGuard) TryLock(ctx context.Context, key string) (bool, error) {
	return g.rdb.SetNX(ctx, "order:idemp:"+key, "1", g.ttl).Result()
}

// MemoryGuard is used for tests and local scenarios.
type MemoryGuard struct {
	mu   sync.Mutex
	seen map[string]bool
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{seen: make(map[string]bool)}
}

func (g *MemoryGuard) TryLock(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.seen[key] {
		return false, nil
	}
	g.seen[key] = true
	return true, nil
}
