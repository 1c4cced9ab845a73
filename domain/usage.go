package domain

import (
	"time"

	"gorm.io/datatypes"
)

// CREATE TABLE public.usage_snapshots (
//     store_key   TEXT PRIMARY KEY,
//     records     JSONB NOT NULL DEFAULT '[]',
//     updated_at  TIMESTAMPTZ DEFAULT NOW()
// );

// UsageSnapshot is one persisted usage record set.
type UsageSnapshot struct {
	StoreKey  string         `gorm:"column:store_key;primaryKey"`
	Records   datatypes.JSON `gorm:"column:records;type:jsonb"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (UsageSnapshot) TableName() string {
	return "usage_snapshots"
}

// UsageScope names an independent usage history (one per picker).
type UsageScope string

const (
	UsageScopeProducts  UsageScope = "products"
	UsageScopeCustomers UsageScope = "customers"
	UsageScopeSuppliers UsageScope = "suppliers"
)

func ParseUsageScope(s string) (UsageScope, error) {
	switch UsageScope(s) {
	case UsageScopeProducts, UsageScopeCustomers, UsageScopeSuppliers:
		return UsageScope(s), nil
	default:
		return "", ErrInvalidScope
	}
}
