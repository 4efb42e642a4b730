package dataset

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"leaddash/internal/domain"
)

// LoadFunc loads a dataset from path.
type LoadFunc func(ctx context.Context, path string) (domain.Dataset, error)

// Cache is a lazily initialized, process-wide handle on one dataset file.
// The first successful load is kept for the life of the process and never
// refreshed. Failed loads are not cached; the next Get tries again.
// Concurrent first calls share a single load.
type Cache struct {
	path string
	load LoadFunc
	log  *zap.Logger

	ds    atomic.Pointer[domain.Dataset]
	group singleflight.Group
}

func NewCache(path string, log *zap.Logger) *Cache {
	return NewCacheWith(path, Load, log)
}

func NewCacheWith(path string, load LoadFunc, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{path: path, load: load, log: log}
}

func (c *Cache) Path() string { return c.path }

func (c *Cache) Get(ctx context.Context) (domain.Dataset, error) {
	if ds := c.ds.Load(); ds != nil {
		return *ds, nil
	}

	v, err, _ := c.group.Do(c.path, func() (any, error) {
		if ds := c.ds.Load(); ds != nil {
			return *ds, nil
		}
		ds, err := c.load(ctx, c.path)
		if err != nil {
			c.log.Error("dataset load failed", zap.String("path", c.path), zap.Error(err))
			return nil, err
		}
		c.ds.Store(&ds)
		c.log.Info("dataset loaded", zap.String("path", c.path), zap.Int("rows", ds.Len()))
		return ds, nil
	})
	if err != nil {
		return domain.Dataset{}, err
	}
	return v.(domain.Dataset), nil
}

// Loaded reports whether a dataset is cached.
func (c *Cache) Loaded() bool { return c.ds.Load() != nil }
