package memory

import (
	"context"
	"sync"

	"myBizHub/domain"
)

// UsageRepository keeps usage records in process memory. Used for local
// development and tests; contents are lost on restart.
type UsageRepository struct {
	mu      sync.RWMutex
	records map[string][]domain.UsageRecord
}

func NewUsageRepository() *UsageRepository {
	return &UsageRepository{records: make(map[string][]domain.UsageRecord)}
}

func (r *UsageRepository) Load(ctx context.Context, key string) ([]domain.UsageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.records[key]
	out := make([]domain.UsageRecord, len(stored))
	copy(out, stored)
	return out, nil
}

func (r *UsageRepository) Save(ctx context.Context, key string, records []domain.UsageRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cp := make([]domain.UsageRecord, len(records))
	copy(cp, records)

	r.mu.Lock()
	r.records[key] = cp
	r.mu.Unlock()
	return nil
}
