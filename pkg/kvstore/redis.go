package kvstore

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store on a Redis instance. Documents are plain string
// values; prefix scans use SCAN MATCH so large keyspaces do not block the
// server the way KEYS would.
type RedisStore struct {
	client *redis.Client
}

// ConnectRedis dials Redis from REDIS_HOST / REDIS_PASSWORD env vars.
func ConnectRedis() (*RedisStore, error) {
	addr := os.Getenv("REDIS_HOST")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	log.Println("Redis connection established")
	return &RedisStore{client: client}, nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	vals, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	docs := make([][]byte, 0, len(vals))
	for _, v := range vals {
		// A key may expire between SCAN and MGET; skip the hole.
		if v == nil {
			continue
		}
		if str, ok := v.(string); ok {
			docs = append(docs, []byte(str))
		}
	}
	return docs, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
