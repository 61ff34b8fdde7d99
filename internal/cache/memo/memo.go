// Package memo caches derived cell sets keyed by (operation, resolution,
// scale, geometry hash). Entries are immutable once written; expiry is
// time-based only, since geometry and grid semantics are static for the
// process lifetime.
package memo

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, val []byte) error
}

// Memory is the in-process backend: a size-bounded LRU with TTL eviction.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

func NewMemory(size int, ttl time.Duration) *Memory {
	if size <= 0 {
		size = 256
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (m *Memory) Set(_ context.Context, key string, val []byte) error {
	// copy: the LRU holds the slice beyond the caller's frame
	cp := make([]byte, len(val))
	copy(cp, val)
	m.lru.Add(key, cp)
	return nil
}
