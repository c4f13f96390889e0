package orders

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/logitrack-app/backend/pkg/logger"
	pkgredis "github.com/logitrack-app/backend/pkg/redis"
)

const (
	cacheScopeList   = "orders:list"
	cacheScopeDetail = "orders:detail"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CacheKey(parts ...string) string
}

// readCache is a read-through cache on order list/detail views. Writes to the
// order store invalidate the affected keys after commit; cache failures never
// fail the request.
type readCache struct {
	store cacheStore
	ttl   time.Duration
	logg  *logger.Logger
}

func newReadCache(store cacheStore, ttl time.Duration, logg *logger.Logger) *readCache {
	if store == nil || ttl <= 0 {
		return nil
	}
	return &readCache{store: store, ttl: ttl, logg: logg}
}

func (c *readCache) getList(ctx context.Context) ([]OrderDTO, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, c.store.CacheKey(cacheScopeList))
	if err != nil {
		if !errors.Is(err, pkgredis.ErrCacheMiss) {
			c.warn(ctx, "order list cache read failed", err)
		}
		return nil, false
	}
	var orders []OrderDTO
	if err := json.Unmarshal([]byte(raw), &orders); err != nil {
		c.warn(ctx, "order list cache entry corrupt", err)
		return nil, false
	}
	return orders, true
}

func (c *readCache) setList(ctx context.Context, orders []OrderDTO) {
	if c == nil {
		return
	}
	payload, err := json.Marshal(orders)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, c.store.CacheKey(cacheScopeList), payload, c.ttl); err != nil {
		c.warn(ctx, "order list cache write failed", err)
	}
}

func (c *readCache) getDetail(ctx context.Context, id uint) (*OrderDTO, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, c.detailKey(id))
	if err != nil {
		if !errors.Is(err, pkgredis.ErrCacheMiss) {
			c.warn(ctx, "order detail cache read failed", err)
		}
		return nil, false
	}
	var order OrderDTO
	if err := json.Unmarshal([]byte(raw), &order); err != nil {
		c.warn(ctx, "order detail cache entry corrupt", err)
		return nil, false
	}
	return &order, true
}

func (c *readCache) setDetail(ctx context.Context, order *OrderDTO) {
	if c == nil || order == nil {
		return
	}
	payload, err := json.Marshal(order)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, c.detailKey(order.ID), payload, c.ttl); err != nil {
		c.warn(ctx, "order detail cache write failed", err)
	}
}

// invalidate drops the list key and the detail key for the mutated order.
func (c *readCache) invalidate(ctx context.Context, id uint) {
	if c == nil {
		return
	}
	keys := []string{c.store.CacheKey(cacheScopeList)}
	if id != 0 {
		keys = append(keys, c.detailKey(id))
	}
	if err := c.store.Del(ctx, keys...); err != nil {
		c.warn(ctx, "order cache invalidation failed", err)
	}
}

func (c *readCache) detailKey(id uint) string {
	return c.store.CacheKey(cacheScopeDetail, strconv.FormatUint(uint64(id), 10))
}

func (c *readCache) warn(ctx context.Context, msg string, err error) {
	if c.logg != nil {
		c.logg.Warn(ctx, msg+": "+err.Error())
	}
}
