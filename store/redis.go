package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const lastProcessedKey = "monitor:last_processed"

// RedisConfig holds connection settings for the durable store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Redis stores the last-processed marker in a Redis key so it survives
// process restarts.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Redis{client: rdb}, nil
}

func (r *Redis) LastProcessed(ctx context.Context) (string, error) {
	id, err := r.client.Get(ctx, lastProcessedKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read last-processed marker: %w", err)
	}
	return id, nil
}

func (r *Redis) SetLastProcessed(ctx context.Context, id string) error {
	if err := r.client.Set(ctx, lastProcessedKey, id, 0).Err(); err != nil {
		return fmt.Errorf("failed to write last-processed marker: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (r *Redis) Close() error {
	return r.client.Close()
}
