package postgres

import (
	"context"
	"fmt"
	"myBizHub/domain"

	"gorm.io/gorm"
)

type SupplierRepository struct {
	DB *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{
		DB: db,
	}
}

// FindActive returns every supplier that is not archived, oldest first.
func (r *SupplierRepository) FindActive(ctx context.Context) ([]domain.Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var suppliers []domain.Supplier
	err := r.DB.WithContext(ctx).
		Where("status <> ?", "archived").
		Order("id ASC").
		Find(&suppliers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find suppliers: %w", err)
	}

	return suppliers, nil
}
