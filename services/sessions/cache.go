package sessions

import (
	"context"
	"encoding/json"
	"time"

	"tutorly/models"
	"tutorly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisPageCache keeps session pages in Redis for a short TTL.
type RedisPageCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisPageCache(client *redis.Client, ttl time.Duration) *RedisPageCache {
	return &RedisPageCache{Client: client, TTL: ttl}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) (*models.SessionPage, bool) {
	raw, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("Error reading session cache", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	var page models.SessionPage
	if err := json.Unmarshal(raw, &page); err != nil {
		utils.GetLogger().Warn("Corrupt session cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, page *models.SessionPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, key, raw, c.TTL).Err()
}
