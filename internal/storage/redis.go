package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/verdantleaf/storefront/pkg/config"
)

const redisKeyPrefix = "vl:state:"

// RedisMedium persists state in Redis so several kiosk terminals can share
// one session and cart.
type RedisMedium struct {
	raw *redis.Client
}

func NewRedisMedium(ctx context.Context, cfg config.RedisConfig) (*RedisMedium, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisMedium{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout
	return opts, nil
}

func (r *RedisMedium) Load(ctx context.Context) (map[string]json.RawMessage, error) {
	snapshot := map[string]json.RawMessage{}

	iter := r.raw.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		fullKey := iter.Val()
		value, err := r.raw.Get(ctx, fullKey).Bytes()
		if err != nil {
			continue
		}
		snapshot[strings.TrimPrefix(fullKey, redisKeyPrefix)] = value
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning state keys: %w", err)
	}
	return snapshot, nil
}

func (r *RedisMedium) Save(ctx context.Context, key string, value json.RawMessage) error {
	if err := r.raw.Set(ctx, redisKeyPrefix+key, []byte(value), 0).Err(); err != nil {
		return fmt.Errorf("saving state key: %w", err)
	}
	return nil
}

func (r *RedisMedium) Delete(ctx context.Context, key string) error {
	if err := r.raw.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("deleting state key: %w", err)
	}
	return nil
}

func (r *RedisMedium) Close() error {
	return r.raw.Close()
}
