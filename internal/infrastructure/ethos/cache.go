package ethos

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"trustrace/pkg/logx"
)

// ScoreCache keeps credibility scores by resolved lowercase address.
type ScoreCache interface {
	Get(ctx context.Context, address string) (int, bool)
	Set(ctx context.Context, address string, score int)
	Invalidate(ctx context.Context, address string)
}

type MemoryCache struct {
	scores *cache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		scores: cache.New(ttl, 2*ttl),
	}
}

func (c *MemoryCache) Get(_ context.Context, address string) (int, bool) {
	v, found := c.scores.Get(address)
	if !found {
		return 0, false
	}

	score, ok := v.(int)
	return score, ok
}

func (c *MemoryCache) Set(_ context.Context, address string, score int) {
	c.scores.Set(address, score, cache.DefaultExpiration)
}

func (c *MemoryCache) Invalidate(_ context.Context, address string) {
	c.scores.Delete(address)
}

// RedisCache shares scores between service replicas.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func redisKey(address string) string {
	return "ethos:score:" + address
}

func (c *RedisCache) Get(ctx context.Context, address string) (int, bool) {
	raw, err := c.client.Get(ctx, redisKey(address)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger(ctx).Warn("redis get score", logx.Error(err))
		}
		return 0, false
	}

	score, err := strconv.Atoi(raw)
	if err != nil {
		logger(ctx).Warn("corrupted cached score", logx.Error(fmt.Errorf("strconv.Atoi: %w", err)))
		return 0, false
	}

	return score, true
}

func (c *RedisCache) Set(ctx context.Context, address string, score int) {
	if err := c.client.Set(ctx, redisKey(address), score, c.ttl).Err(); err != nil {
		logger(ctx).Warn("redis set score", logx.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context, address string) {
	if err := c.client.Del(ctx, redisKey(address)).Err(); err != nil {
		logger(ctx).Warn("redis del score", logx.Error(err))
	}
}
