package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/aretw0/taskroute/pkg/ports"
	"golang.org/x/sync/singleflight"
)

// CacheObserver is notified of cache hits and misses.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// Cached wraps a Generator with a response cache.
// Identical prompts in flight at the same time share one upstream call.
// Cache failures are logged and never fail a generation.
type Cached struct {
	next     ports.Generator
	cache    ports.ResponseCache
	ttl      time.Duration
	group    singleflight.Group
	logger   *slog.Logger
	observer CacheObserver
}

// CachedOption configures Cached.
type CachedOption func(*Cached)

// WithCacheLogger sets the logger for cache failures.
func WithCacheLogger(logger *slog.Logger) CachedOption {
	return func(c *Cached) {
		c.logger = logger
	}
}

// WithCacheObserver reports hits and misses, e.g. to metrics.
func WithCacheObserver(o CacheObserver) CachedOption {
	return func(c *Cached) {
		c.observer = o
	}
}

// NewCached decorates next with cache. A zero ttl never expires entries.
func NewCached(next ports.Generator, cache ports.ResponseCache, ttl time.Duration, opts ...CachedOption) *Cached {
	c := &Cached{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CacheKey is the hex SHA-256 of the prompt.
func CacheKey(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// Generate implements ports.Generator.
func (c *Cached) Generate(ctx context.Context, prompt string) (string, error) {
	key := CacheKey(prompt)

	if v, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("Response cache read failed", "err", err)
	} else if ok {
		c.hit()
		return v, nil
	}
	c.miss()

	// The shared call outlives any single caller; each caller still
	// returns as soon as its own context is done.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		out, err := c.next.Generate(shared, prompt)
		if err != nil {
			return "", err
		}
		if err := c.cache.Set(shared, key, out, c.ttl); err != nil {
			c.logger.Warn("Response cache write failed", "err", err)
		}
		return out, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Cached) hit() {
	if c.observer != nil {
		c.observer.CacheHit()
	}
}

func (c *Cached) miss() {
	if c.observer != nil {
		c.observer.CacheMiss()
	}
}
