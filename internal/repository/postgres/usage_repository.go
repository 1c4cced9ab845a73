package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myBizHub/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsageRepository keeps one JSONB row per usage store key.
type UsageRepository struct {
	DB *gorm.DB
}

func NewUsageRepository(db *gorm.DB) *UsageRepository {
	return &UsageRepository{DB: db}
}

func (r *UsageRepository) Load(ctx context.Context, key string) ([]domain.UsageRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var row domain.UsageSnapshot
	err := r.DB.WithContext(ctx).First(&row, "store_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []domain.UsageRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query usage_snapshots: %w", err)
	}

	records := []domain.UsageRecord{}
	if len(row.Records) > 0 {
		if err := json.Unmarshal(row.Records, &records); err != nil {
			return nil, fmt.Errorf("failed to unmarshal usage records: %w", err)
		}
	}

	return records, nil
}

func (r *UsageRepository) Save(ctx context.Context, key string, records []domain.UsageRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if records == nil {
		records = []domain.UsageRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal usage records: %w", err)
	}

	row := domain.UsageSnapshot{
		StoreKey: key,
		Records:  datatypes.JSON(raw),
	}

	if err := r.DB.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"records", "updated_at"}),
		},
	).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to upsert usage_snapshots: %w", err)
	}

	return nil
}
