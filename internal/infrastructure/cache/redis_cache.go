package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/worksafe-api/internal/domain/entity"
	"github.com/oksasatya/worksafe-api/pkg/helpers"
)

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, id int64) (*entity.Workstation, bool, error) {
	var rec record
	found, err := helpers.RedisGetJSON(ctx, c.rdb, workstationKey(id), &rec)
	if err != nil || !found {
		return nil, false, err
	}
	return rec.restore(), true, nil
}

func (c *RedisCache) Set(ctx context.Context, w *entity.Workstation) error {
	return helpers.RedisSetJSON(ctx, c.rdb, workstationKey(w.ID), toRecord(w), c.ttl)
}

func (c *RedisCache) Delete(ctx context.Context, id int64) error {
	return helpers.RedisDel(ctx, c.rdb, workstationKey(id))
}
