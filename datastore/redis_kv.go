package datastore

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "resistor:"

type RedisParameters struct {
	Addr     string
	Username string
	Password string
	DB       int
}

// RedisKV stores documents as plain string values under a common prefix
type RedisKV struct {
	client *redis.Client
}

func NewRedisKV(params RedisParameters) *RedisKV {
	rdb := redis.NewClient(&redis.Options{
		Addr:     params.Addr,
		Username: params.Username,
		Password: params.Password,
		DB:       params.DB,
	})
	return &RedisKV{client: rdb}
}

func (r *RedisKV) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisKV) Close() error {
	return r.client.Close()
}

func (r *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, NoRowsError{true, err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key %s: %v", key, err)
	}
	return v, nil
}

func (r *RedisKV) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write key %s: %v", key, err)
	}
	return nil
}
