package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
)

const defaultLRUSize = 1024

// LRUCache is the in-process fallback when Redis is not configured.
// Entries expire after ttl like their Redis counterparts; ttl <= 0 keeps them until evicted.
// Values are stored as records so callers never share a mutable entity.
type LRUCache struct {
	entries *expirable.LRU[int64, record]
}

func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	if size <= 0 {
		size = defaultLRUSize
	}
	return &LRUCache{entries: expirable.NewLRU[int64, record](size, nil, ttl)}
}

func (c *LRUCache) Get(_ context.Context, id int64) (*entity.Workstation, bool, error) {
	rec, ok := c.entries.Get(id)
	if !ok {
		return nil, false, nil
	}
	return rec.restore(), true, nil
}

func (c *LRUCache) Set(_ context.Context, w *entity.Workstation) error {
	c.entries.Add(w.ID, toRecord(w))
	return nil
}

func (c *LRUCache) Delete(_ context.Context, id int64) error {
	c.entries.Remove(id)
	return nil
}
