package catalog

import (
	"context"
	"errors"
	"fmt"
	"github.com/redis/go-redis/v9"
	"time"
)

var ErrSnapshotMiss = errors.New("snapshot miss")

// SnapshotStore holds serialized snapshots shared between processes.
type SnapshotStore interface {
	Load(ctx context.Context, table Table) ([]byte, error)
	Save(ctx context.Context, table Table, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, tables ...Table) error
}

type RedisSnapshotStore struct {
	client *redis.Client
}

func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func (r *RedisSnapshotStore) Load(ctx context.Context, table Table) ([]byte, error) {
	data, err := r.client.Get(ctx, snapshotKey(table)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return data, nil
}

func (r *RedisSnapshotStore) Save(ctx context.Context, table Table, data []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, snapshotKey(table), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisSnapshotStore) Delete(ctx context.Context, tables ...Table) error {
	if len(tables) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tables))
	for _, t := range tables {
		keys = append(keys, snapshotKey(t))
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func snapshotKey(table Table) string {
	return fmt.Sprintf("catalog:%s", table)
}
