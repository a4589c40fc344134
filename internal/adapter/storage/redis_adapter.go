package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Pilot202/skylit-logistic-backend/internal/core/domain"
)

const (
	// EventChannel is the pub/sub channel the live dashboard subscribes to.
	EventChannel = "inventory:events"

	summaryKey = "inventory:summary"
)

// RedisAdapter fans stock events out to dashboard listeners over pub/sub
// and holds the cached inventory summary. Both concerns are best-effort.
type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) *RedisAdapter {
	return &RedisAdapter{client: client}
}

func (r *RedisAdapter) Publish(ctx context.Context, ev domain.StockEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal stock event: %w", err)
	}
	if err := r.client.Publish(ctx, EventChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish stock event: %w", err)
	}
	return nil
}

func (r *RedisAdapter) GetSummary(ctx context.Context) (string, error) {
	val, err := r.client.Get(ctx, summaryKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get summary: %w", err)
	}
	return val, nil
}

func (r *RedisAdapter) SetSummary(ctx context.Context, summary string, ttl time.Duration) error {
	if err := r.client.Set(ctx, summaryKey, summary, ttl).Err(); err != nil {
		return fmt.Errorf("set summary: %w", err)
	}
	return nil
}
