package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// TokenDenylist 记录已注销的 token id，直到 token 自然过期
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

const denylistKeyPrefix = "auth:revoked:"

type RedisTokenDenylist struct {
	Client *redis.Client
}

func NewRedisTokenDenylist(client *redis.Client) *RedisTokenDenylist {
	return &RedisTokenDenylist{Client: client}
}

func (d *RedisTokenDenylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return d.Client.Set(ctx, denylistKeyPrefix+jti, 1, ttl).Err()
}

func (d *RedisTokenDenylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.Client.Exists(ctx, denylistKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MemoryTokenDenylist 未启用 redis 时使用，仅对单实例有效
type MemoryTokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenDenylist() *MemoryTokenDenylist {
	return &MemoryTokenDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *MemoryTokenDenylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	// 顺便清理已过期的条目
	for k, exp := range d.revoked {
		if !exp.After(now) {
			delete(d.revoked, k)
		}
	}
	if expiresAt.After(now) {
		d.revoked[jti] = expiresAt
	}
	return nil
}

func (d *MemoryTokenDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	exp, ok := d.revoked[jti]
	if !ok {
		return false, nil
	}
	if !exp.After(d.now()) {
		delete(d.revoked, jti)
		return false, nil
	}
	return true, nil
}
