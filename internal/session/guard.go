package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Guard holds the busy flag per user. Acquire reports false when the user
// already has a request in flight.
type Guard interface {
	Acquire(ctx context.Context, user string) (bool, error)
	Release(ctx context.Context, user string) error
}

// MemoryGuard keeps busy flags in process memory.
type MemoryGuard struct {
	mu   sync.Mutex
	busy map[string]struct{}
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{busy: make(map[string]struct{})}
}

func (g *MemoryGuard) Acquire(_ context.Context, user string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.busy[user]; ok {
		return false, nil
	}
	g.busy[user] = struct{}{}
	return true, nil
}

func (g *MemoryGuard) Release(_ context.Context, user string) error {
	g.mu.Lock()
	delete(g.busy, user)
	g.mu.Unlock()
	return nil
}

// RedisGuard shares busy flags between server replicas. The TTL bounds how
// long a flag survives a replica that died mid-request.
type RedisGuard struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisGuard(client *redis.Client, ttl time.Duration) *RedisGuard {
	return &RedisGuard{client: client, ttl: ttl, prefix: "travel:busy:"}
}

func (g *RedisGuard) Acquire(ctx context.Context, user string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.prefix+user, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire busy flag: %w", err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, user string) error {
	if err := g.client.Del(ctx, g.prefix+user).Err(); err != nil {
		return fmt.Errorf("release busy flag: %w", err)
	}
	return nil
}
