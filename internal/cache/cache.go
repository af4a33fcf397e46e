// Package cache holds the optional Redis cache for the catalog filter options.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"msdsapi/internal/config"
	"msdsapi/internal/model"
)

const (
	generationKey    = "msdsapi:options:gen"
	optionsKeyPrefix = "msdsapi:options:v2:"
)

// OptionsCache stores the result of the options query between catalog writes.
//
// Entries are keyed by a generation that Invalidate bumps. A reader takes the generation
// before querying the database and hands it back to Set, so a snapshot taken before a
// concurrent write lands under a generation nobody reads anymore.
type OptionsCache interface {
	Generation(ctx context.Context) (int64, error)
	// Get returns the options cached for gen; ok is false on a miss.
	Get(ctx context.Context, gen int64) (opts *model.Options, ok bool, err error)
	Set(ctx context.Context, gen int64, opts *model.Options) error
	Invalidate(ctx context.Context) error
	Close() error
}

type redisOptionsCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRedis connects to cfg.Addr and pings it once.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (OptionsCache, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisOptionsCache(rdb, cfg.TTL), nil
}

func newRedisOptionsCache(rdb *goredis.Client, ttl time.Duration) *redisOptionsCache {
	return &redisOptionsCache{rdb: rdb, ttl: ttl}
}

func optionsKey(gen int64) string {
	return optionsKeyPrefix + strconv.FormatInt(gen, 10)
}

// Generation returns the current generation; a missing counter reads as 0.
func (c *redisOptionsCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisOptionsCache) Get(ctx context.Context, gen int64) (*model.Options, bool, error) {
	raw, err := c.rdb.Get(ctx, optionsKey(gen)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var opts model.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		// A payload from an older layout is treated as a miss.
		return nil, false, nil
	}
	return &opts, true, nil
}

func (c *redisOptionsCache) Set(ctx context.Context, gen int64, opts *model.Options) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, optionsKey(gen), raw, c.ttl).Err()
}

// Invalidate moves readers to a fresh generation. Entries of older generations expire by TTL.
func (c *redisOptionsCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, generationKey).Err()
}

func (c *redisOptionsCache) Close() error {
	return c.rdb.Close()
}

// Nop is used when no Redis address is configured. It always misses.
type Nop struct{}

func (Nop) Generation(context.Context) (int64, error)                { return 0, nil }
func (Nop) Get(context.Context, int64) (*model.Options, bool, error) { return nil, false, nil }
func (Nop) Set(context.Context, int64, *model.Options) error         { return nil }
func (Nop) Invalidate(context.Context) error                         { return nil }
func (Nop) Close() error                                             { return nil }
