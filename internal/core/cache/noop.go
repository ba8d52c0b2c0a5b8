package cache

import (
	"context"
	"time"
)

// Noop is a Cache that stores nothing. Used when no Redis URL is configured.
type Noop struct{}

func (Noop) Get(_ context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (Noop) Delete(context.Context, string) error { return nil }

func (Noop) Ping(context.Context) error { return nil }

func (Noop) Close() error { return nil }
