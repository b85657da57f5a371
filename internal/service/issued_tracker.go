package service

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// IssuedTokenTracker registra tokens de acceso emitidos para las
// estadísticas de /health. Ninguna ruta de autenticación lo consulta.
type IssuedTokenTracker interface {
	Track(ctx context.Context, token string, ttl time.Duration) error
	Count(ctx context.Context) (int64, error)
}

type memoryIssuedTokenTracker struct {
	mu    sync.Mutex
	items map[string]time.Time
}

func NewMemoryIssuedTokenTracker() IssuedTokenTracker {
	return &memoryIssuedTokenTracker{
		items: make(map[string]time.Time),
	}
}

func (t *memoryIssuedTokenTracker) Track(_ context.Context, token string, ttl time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if strings.TrimSpace(token) == "" {
		return nil
	}
	t.items[token] = time.Now().UTC().Add(ttl)
	return nil
}

func (t *memoryIssuedTokenTracker) Count(_ context.Context) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now().UTC()
	for token, exp := range t.items {
		if now.After(exp) {
			delete(t.items, token)
		}
	}
	return int64(len(t.items)), nil
}

const redisIssuedTokensKey = "mockauth:issued_tokens"

type redisIssuedTokenTracker struct {
	client *redis.Client
}

func NewRedisIssuedTokenTracker(client *redis.Client) IssuedTokenTracker {
	if client == nil {
		return nil
	}
	return &redisIssuedTokenTracker{client: client}
}

func (t *redisIssuedTokenTracker) Track(ctx context.Context, token string, ttl time.Duration) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	expiresAt := time.Now().UTC().Add(ttl).Unix()
	return t.client.ZAdd(ctx, redisIssuedTokensKey, redis.Z{
		Score:  float64(expiresAt),
		Member: token,
	}).Err()
}

func (t *redisIssuedTokenTracker) Count(ctx context.Context) (int64, error) {
	now := strconv.FormatInt(time.Now().UTC().Unix(), 10)
	if err := t.client.ZRemRangeByScore(ctx, redisIssuedTokensKey, "-inf", now).Err(); err != nil {
		return 0, err
	}
	return t.client.ZCard(ctx, redisIssuedTokensKey).Result()
}
