package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
	"github.com/pkg/errors"
)

type redisStore struct {
	redisClient *redis.Client
	prefix      string
}

// NewRedisStore returns a Store backed by Redis. Every key is namespaced with
// the specified prefix, which lets several users share one Redis database.
// Values never expire.
func NewRedisStore(redisClient *redis.Client, prefix string) Store {
	return &redisStore{
		redisClient: redisClient,
		prefix:      prefix,
	}
}

func (r *redisStore) Get(
	ctx context.Context,
	key string,
) (string, bool, error) {
	value, err := r.redisClient.WithContext(ctx).Get(r.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "error getting %q from redis", key)
	}
	return value, true, nil
}

func (r *redisStore) Set(ctx context.Context, key string, value string) error {
	if err :=
		r.redisClient.WithContext(ctx).Set(r.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "error setting %q in redis", key)
	}
	return nil
}

func (r *redisStore) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	redisKeys := make([]string, len(keys))
	for i, key := range keys {
		redisKeys[i] = r.key(key)
	}
	if err := r.redisClient.WithContext(ctx).Del(redisKeys...).Err(); err != nil {
		return errors.Wrap(err, "error deleting keys from redis")
	}
	return nil
}

func (r *redisStore) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", r.prefix, key)
}
