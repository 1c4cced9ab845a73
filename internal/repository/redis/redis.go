package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myBizHub/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// UsageRepository stores each usage record set as one JSON string.
type UsageRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUsageRepository returns a Redis-backed usage store. A zero ttl keeps
// record sets forever.
func NewUsageRepository(client *redis.Client, ttl time.Duration) *UsageRepository {
	return &UsageRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *UsageRepository) Load(ctx context.Context, key string) ([]domain.UsageRecord, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []domain.UsageRecord{}, nil
		}
		return nil, fmt.Errorf("failed to get usage records from Redis: %w", err)
	}

	records := []domain.UsageRecord{}
	if err := json.Unmarshal([]byte(val), &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal usage records: %w", err)
	}

	return records, nil
}

func (r *UsageRepository) Save(ctx context.Context, key string, records []domain.UsageRecord) error {
	if records == nil {
		records = []domain.UsageRecord{}
	}

	jsonData, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal usage records: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store usage records in Redis: %w", err)
	}

	return nil
}
