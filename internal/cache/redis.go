package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares cached reads between processes. Same contract as
// MemoryStore; keys are namespaced so a shared instance can hold other data.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

func NewRedisStore(client *redis.Client, namespace string) *RedisStore {
	if namespace == "" {
		namespace = "salon-cache"
	}
	return &RedisStore{client: client, namespace: namespace}
}

func (s *RedisStore) redisKey(key Key) string {
	return s.namespace + ":" + key.String()
}

func (s *RedisStore) Get(ctx context.Context, key Key) ([]byte, error) {
	v, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *RedisStore) Set(ctx context.Context, key Key, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.redisKey(key), value, ttl).Err()
}

func (s *RedisStore) Invalidate(ctx context.Context, key Key) error {
	exact := s.redisKey(key)

	if err := s.client.Del(ctx, exact).Err(); err != nil {
		return err
	}

	iter := s.client.Scan(ctx, 0, exact+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

var _ Store = (*RedisStore)(nil)
