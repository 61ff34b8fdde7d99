package memo

import (
	"context"
	"time"

	"github.com/hexpanel/hexpanel/internal/cache/redisstore"
)

// Redis is the shared backend, for running several replicas against one memo.
type Redis struct {
	cli     *redisstore.Client
	ttl     time.Duration
	timeout time.Duration
}

func NewRedis(cli *redisstore.Client, ttl, opTimeout time.Duration) *Redis {
	return &Redis{cli: cli, ttl: ttl, timeout: opTimeout}
}

func (r *Redis) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.cli.Get(ctx, key)
}

func (r *Redis) Set(ctx context.Context, key string, val []byte) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return r.cli.Set(ctx, key, val, r.ttl)
}
