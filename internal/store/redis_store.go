package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/quantum-forge/internal/config"
	"github.com/quantum-forge/internal/types"
)

// RedisStore implements the Store interface using Redis.
// Saves are stored as JSON with an optional TTL for abandoned slots.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration // Time-to-live for saves (0 = no expiration)
}

// NewRedisStore connects to Redis and verifies the connection.
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.TTL), nil
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

// SaveGame writes a save, refreshing its TTL.
func (s *RedisStore) SaveGame(ctx context.Context, record *types.SaveRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal save: %w", err)
	}

	if err := s.client.Set(ctx, saveKey(record.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store save: %w", err)
	}
	return nil
}

// LoadGame retrieves a save from Redis.
func (s *RedisStore) LoadGame(ctx context.Context, id string) (*types.SaveRecord, error) {
	data, err := s.client.Get(ctx, saveKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSaveNotFound
		}
		return nil, fmt.Errorf("failed to get save: %w", err)
	}

	var record types.SaveRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save: %w", err)
	}
	return &record, nil
}

// DeleteGame deletes a save from Redis.
func (s *RedisStore) DeleteGame(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, saveKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func saveKey(id string) string {
	return fmt.Sprintf("save:%s", id)
}
