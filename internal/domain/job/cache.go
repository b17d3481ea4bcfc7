package job

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/venkatajanapareddy/sarkarijobs.cc/pkg/logging"
)

const (
	flightKey    = "catalog"
	defaultRetry = 30 * time.Second
)

// CatalogLoader produces a fresh catalog; *Loader is the production implementation
type CatalogLoader interface {
	Load(ctx context.Context) (*Catalog, error)
}

// CacheOption configures Cache
type CacheOption func(*Cache)

// WithRevalidate sets how long a loaded catalog stays fresh; 0 never expires
func WithRevalidate(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d >= 0 {
			c.ttl = d
		}
	}
}

// WithRetry sets how long a failed load waits before the next attempt
func WithRetry(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d >= 0 {
			c.retry = d
		}
	}
}

// WithCacheClock sets a custom clock
func WithCacheClock(clock func() time.Time) CacheOption {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// Cache holds the current catalog snapshot. Concurrent cold or expired
// reads collapse into one load; snapshots are swapped whole.
type Cache struct {
	loader CatalogLoader
	log    *logging.Logger
	ttl    time.Duration
	retry  time.Duration
	clock  func() time.Time

	group singleflight.Group

	mu          sync.RWMutex
	current     *Catalog
	expires     time.Time // zero means no expiry
	invalidated bool
	generation  uint64 // bumped by every Invalidate
}

// NewCache wraps loader with a revalidating snapshot
func NewCache(loader CatalogLoader, log *logging.Logger, opts ...CacheOption) *Cache {
	c := &Cache{
		loader: loader,
		log:    log,
		retry:  defaultRetry,
		clock:  time.Now,
	}
	if c.log == nil {
		c.log = logging.NewNop()
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the current catalog, loading it when cold or expired. It never
// returns nil: a failed load serves the previous snapshot or an empty one.
// If ctx ends while waiting on a load, whatever snapshot exists is returned.
func (c *Cache) Get(ctx context.Context) *Catalog {
	if cur, ok := c.fresh(); ok {
		return cur
	}

	ch := c.group.DoChan(flightKey, func() (any, error) {
		if cur, ok := c.fresh(); ok {
			return cur, nil
		}
		return c.reload(ctx)
	})

	select {
	case res := <-ch:
		return res.Val.(*Catalog)
	case <-ctx.Done():
		return c.snapshot()
	}
}

// Refresh forces a reload, sharing any load already in flight
func (c *Cache) Refresh(ctx context.Context) (*Catalog, error) {
	v, err, _ := c.group.Do(flightKey, func() (any, error) {
		return c.reload(ctx)
	})
	return v.(*Catalog), err
}

// Invalidate marks the snapshot stale; the next Get reloads it
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.invalidated = true
	c.generation++
	c.mu.Unlock()
	c.log.Debug("catalog invalidated")
}

// Peek returns the current snapshot without loading; nil when cold
func (c *Cache) Peek() *Catalog {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *Cache) fresh() (*Catalog, bool) {
	now := c.clock()
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.current == nil || c.invalidated {
		return c.current, false
	}
	if !c.expires.IsZero() && !now.Before(c.expires) {
		return c.current, false
	}
	return c.current, true
}

func (c *Cache) snapshot() *Catalog {
	if cur := c.Peek(); cur != nil {
		return cur
	}
	return emptyCatalog("", c.clock())
}

func (c *Cache) reload(ctx context.Context) (*Catalog, error) {
	c.mu.RLock()
	gen := c.generation
	c.mu.RUnlock()

	// the load outlives any single waiting caller
	cat, err := c.loader.Load(context.WithoutCancel(ctx))
	now := c.clock()

	c.mu.Lock()
	defer c.mu.Unlock()
	// an Invalidate that arrived mid-load still applies to this result
	if c.generation == gen {
		c.invalidated = false
	}

	if err != nil {
		if c.current == nil {
			if cat == nil {
				cat = emptyCatalog("", now)
			}
			c.current = cat
		}
		c.expires = now.Add(c.retry)
		c.log.Warn("catalog load failed, serving previous snapshot",
			"error", err, "records", c.current.Len(), "retry_in", c.retry)
		return c.current, err
	}

	if cat == nil {
		cat = emptyCatalog("", now)
	}
	c.current = cat
	if c.ttl > 0 {
		c.expires = now.Add(c.ttl)
	} else {
		c.expires = time.Time{}
	}
	return cat, nil
}
