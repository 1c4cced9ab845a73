package usage

import (
	"context"
	"errors"
	"fmt"
	"myBizHub/business/matching"
	"myBizHub/domain"
	"myBizHub/pkg/logger"
	"myBizHub/pkg/metrics"
	"strings"
	"time"
)

// UsageStore persists one usage record set per key.
type UsageStore interface {
	Load(ctx context.Context, key string) ([]domain.UsageRecord, error)
	Save(ctx context.Context, key string, records []domain.UsageRecord) error
}

// Locker serializes fn across processes sharing the same store.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func() error) error
}

type Clock func() time.Time

type usageService struct {
	store      UsageStore
	locker     Locker
	clock      Clock
	maxRecords int
	keys       *keyedMutex
}

// NewUsageService builds the usage service. locker may be nil when a single
// process owns the store.
func NewUsageService(store UsageStore, locker Locker, clock Clock, maxRecords int) *usageService {
	if clock == nil {
		clock = time.Now
	}
	return &usageService{
		store:      store,
		locker:     locker,
		clock:      clock,
		maxRecords: maxRecords,
		keys:       newKeyedMutex(),
	}
}

func StoreKey(scope domain.UsageScope, userID uint) string {
	return fmt.Sprintf("usage:%s:user=%d", scope, userID)
}

// Record counts one pick of entityID in scope for userID and returns the
// updated record set.
func (s *usageService) Record(ctx context.Context, scope domain.UsageScope, userID uint, entityID string) ([]domain.UsageRecord, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when recording usage")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := domain.ParseUsageScope(string(scope)); err != nil {
		return nil, err
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return nil, domain.ErrEmptyEntityID
	}

	key := StoreKey(scope, userID)
	unlock, err := s.keys.Lock(ctx, key)
	if err != nil {
		logger.WithContext(ctx).Warnw("gave up waiting for usage update", "key", key, "error", err)
		return nil, fmt.Errorf("context error: %w", err)
	}
	defer unlock()

	var updated []domain.UsageRecord
	update := func() error {
		records, err := s.store.Load(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to load usage records: %w", err)
		}

		updated = matching.RecordUsageCapped(records, entityID, s.clock().UnixMilli(), s.maxRecords)

		if err := s.store.Save(ctx, key, updated); err != nil {
			return fmt.Errorf("failed to save usage records: %w", err)
		}
		return nil
	}

	if s.locker != nil {
		err = s.locker.WithLock(ctx, key, update)
	} else {
		err = update()
	}
	if err != nil {
		if errors.Is(err, domain.ErrUsageLocked) {
			metrics.UsageLockContention.Inc()
		}
		logger.WithContext(ctx).Errorw("Failed to record usage", "key", key, "error", err)
		return nil, err
	}

	metrics.UsageRecorded.WithLabelValues(string(scope)).Inc()
	logger.WithContext(ctx).Debugw("usage recorded", "key", key, "entity_id", entityID)

	return updated, nil
}

// Records returns the stored record set for scope and userID as is.
func (s *usageService) Records(ctx context.Context, scope domain.UsageScope, userID uint) ([]domain.UsageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	if _, err := domain.ParseUsageScope(string(scope)); err != nil {
		return nil, err
	}

	records, err := s.store.Load(ctx, StoreKey(scope, userID))
	if err != nil {
		logger.Error("Failed to load usage records", "scope", scope, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to load usage records: %w", err)
	}
	return records, nil
}

func (s *usageService) Recent(ctx context.Context, scope domain.UsageScope, userID uint, within time.Duration) ([]domain.UsageRecord, error) {
	records, err := s.Records(ctx, scope, userID)
	if err != nil {
		return nil, err
	}
	return matching.Recent(records, within.Milliseconds(), s.clock().UnixMilli()), nil
}

func (s *usageService) Favorites(ctx context.Context, scope domain.UsageScope, userID uint, minCount int) ([]domain.UsageRecord, error) {
	records, err := s.Records(ctx, scope, userID)
	if err != nil {
		return nil, err
	}
	return matching.Favorites(records, minCount), nil
}
