package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"originform/pkg/sentinel"
)

// RedisKV persists snapshots in Redis, namespaced per applicant session so
// two browsers never clobber each other's drafts.
type RedisKV struct {
	client *redis.Client
	prefix string
}

// NewRedisKV creates a Redis-backed KV. The prefix scopes all keys, typically
// to a session or applicant identifier.
func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{client: client, prefix: prefix}
}

func (kv *RedisKV) Get(ctx context.Context, key string) (string, error) {
	v, err := kv.client.Get(ctx, kv.namespaced(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (kv *RedisKV) Set(ctx context.Context, key, value string) error {
	if err := kv.client.Set(ctx, kv.namespaced(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (kv *RedisKV) Remove(ctx context.Context, key string) error {
	if err := kv.client.Del(ctx, kv.namespaced(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (kv *RedisKV) namespaced(key string) string {
	return kv.prefix + ":" + key
}
