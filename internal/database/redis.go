package database

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKeyPrefix namespaces every profile key, e.g. dhrms:<profile>:users.
const RedisKeyPrefix = "dhrms:"

// ConnectRedis connects to Redis and pings it.
func ConnectRedis(ctx context.Context, redisURI string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURI)
	if err != nil {
		return nil, err
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 5
	opt.MaxRetries = 3
	opt.DialTimeout = 5 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second
	opt.PoolTimeout = 4 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// RedisStore keeps each profile key as a plain Redis string without expiry.
type RedisStore struct {
	client redis.UniversalClient
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, profile, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, redisKey(profile, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisStore) Set(ctx context.Context, profile, key string, value []byte) error {
	return s.client.Set(ctx, redisKey(profile, key), value, 0).Err()
}

func (s *RedisStore) Remove(ctx context.Context, profile, key string) error {
	return s.client.Del(ctx, redisKey(profile, key)).Err()
}

func (s *RedisStore) Clear(ctx context.Context, profile string) error {
	var keys []string
	iter := s.client.Scan(ctx, 0, RedisKeyPrefix+profile+":*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func redisKey(profile, key string) string {
	return RedisKeyPrefix + profile + ":" + key
}
