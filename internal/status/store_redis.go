package status

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists job records in Redis with optional TTL.
type RedisStore struct {
	cli *redis.Client
	ttl time.Duration // 0 means no expiration
}

type RedisStoreConfig struct {
	Client *redis.Client
	// TTL is the expiration for job keys (0 = no expiration)
	TTL time.Duration
}

func NewRedisStore(cfg *RedisStoreConfig) *RedisStore {
	return &RedisStore{cli: cfg.Client, ttl: cfg.TTL}
}

// NewRedisStoreFromURL creates a Redis store from a connection URL.
func NewRedisStoreFromURL(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	cli := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cli.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisStore(&RedisStoreConfig{Client: cli, TTL: ttl}), nil
}

func (s *RedisStore) jobKey(jobID string) string {
	return "flashcards:job:" + jobID
}

func (s *RedisStore) Get(ctx context.Context, jobID string) (*Record, error) {
	res, err := s.cli.Get(ctx, s.jobKey(jobID)).Bytes()
	if err == redis.Nil {
		return nil, nil // No record yet
	}
	if err != nil {
		return nil, err
	}
	var rec Record
	if err := json.Unmarshal(res, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RedisStore) Put(ctx context.Context, rec *Record) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.cli.Set(ctx, s.jobKey(rec.JobID), b, s.ttl).Err()
}
