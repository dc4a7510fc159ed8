package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"animal-shelter/internal/platform/config"
	"animal-shelter/internal/ports/cache"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "shelter:cache:"
	tagPrefix = "shelter:tag:"
)

// Cache guarda las lecturas públicas en Redis. Cada tag es un SET con las
// claves que dependen de él; Invalidate borra claves y set y publica el tag
// en el canal para que otros consumidores (front, workers) se enteren.
type Cache struct {
	rdb     *redis.Client
	channel string
}

var _ cache.Cache = (*Cache)(nil)

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
}

func New(rdb *redis.Client, channel string) *Cache {
	return &Cache{rdb: rdb, channel: channel}
}

// Ping sirve para fallar rápido al arrancar.
func (c *Cache) Ping(ctx context.Context) error {
	if err := c.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration, tags ...string) error {
	full := keyPrefix + key
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, full, value, ttl)
		for _, t := range tags {
			p.SAdd(ctx, tagPrefix+t, full)
			// el set vive un poco más que sus claves
			if ttl > 0 {
				p.Expire(ctx, tagPrefix+t, 2*ttl)
			}
		}
		return nil
	})
	return err
}

func (c *Cache) Invalidate(ctx context.Context, tags ...string) error {
	for _, t := range tags {
		set := tagPrefix + t
		keys, err := c.rdb.SMembers(ctx, set).Result()
		if err != nil {
			return err
		}
		if err := c.rdb.Del(ctx, append(keys, set)...).Err(); err != nil {
			return err
		}
		if c.channel != "" {
			if err := c.rdb.Publish(ctx, c.channel, t).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Cache) Close() error {
	return c.rdb.Close()
}
