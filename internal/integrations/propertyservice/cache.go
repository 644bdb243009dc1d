package propertyservice

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache read-through кеш ответов propertyservice поверх Redis
// Ошибки кеша не фатальны: промах или недоступный Redis приводят к походу в сервис
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewRedisCache создает кеш с указанным TTL
func NewRedisCache(client *redis.Client, ttl time.Duration, logger Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger}
}

// Get читает значение из кеша; возвращает false при промахе или ошибке
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) bool {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.logger.Warn("RedisCache: GET %s failed: %v", key, err)
		return false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("RedisCache: failed to unmarshal cached %s: %v", key, err)
		return false
	}

	return true
}

// Set пишет значение в кеш; ошибка записи только логируется
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("RedisCache: failed to marshal %s: %v", key, err)
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("RedisCache: SET %s failed: %v", key, err)
	}
}
