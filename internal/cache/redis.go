package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

var (
	ErrCacheMiss     = errors.New("cache miss")
	ErrCacheDisabled = errors.New("cache disabled")
)

// Cache key prefixes
const (
	PlanetsKey      = "catalog:planets"
	PlanetPrefix    = "catalog:planet:"
	CharactersKey   = "catalog:people"
	CharacterPrefix = "catalog:person:"
)

// Cache stores JSON encodable values by key.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type RedisCache struct {
	client  *redis.Client
	enabled bool
	ttl     time.Duration
	logger  *logrus.Logger
}

// NewRedisCache connects to Redis. With an empty address it returns a
// disabled cache whose every Get is a miss.
func NewRedisCache(opts Options, logger *logrus.Logger) (*RedisCache, error) {
	if opts.Addr == "" {
		logger.Info("Redis cache is disabled")
		return Disabled(logger), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.WithError(err).Error("Failed to connect to Redis")
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"addr": opts.Addr,
		"db":   opts.DB,
		"ttl":  opts.TTL,
	}).Info("Redis cache connected successfully")

	return &RedisCache{
		client:  client,
		enabled: true,
		ttl:     opts.TTL,
		logger:  logger,
	}, nil
}

// Disabled returns a cache that never stores anything.
func Disabled(logger *logrus.Logger) *RedisCache {
	return &RedisCache{enabled: false, logger: logger}
}

// IsEnabled returns whether cache is enabled
func (c *RedisCache) IsEnabled() bool {
	return c.enabled
}

func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if !c.enabled {
		return ErrCacheDisabled
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return fmt.Errorf("failed to read %s from cache: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.enabled {
		return ErrCacheDisabled
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s to cache: %w", key, err)
	}
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}
