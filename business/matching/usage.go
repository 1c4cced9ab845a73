package matching

import (
	"sort"

	"myBizHub/domain"
)

// MaxUsageRecords is how many usage records survive a RecordUsage call.
const MaxUsageRecords = 50

// RecordUsage returns a copy of records with entityID's use counted at now.
// The result is sorted by count desc, last use desc, and capped at
// MaxUsageRecords so the least used and oldest entries fall off first.
func RecordUsage(records []domain.UsageRecord, entityID string, now int64) []domain.UsageRecord {
	return RecordUsageCapped(records, entityID, now, MaxUsageRecords)
}

// RecordUsageCapped is RecordUsage with an explicit cap. A cap <= 0 keeps
// every record.
func RecordUsageCapped(records []domain.UsageRecord, entityID string, now int64, limit int) []domain.UsageRecord {
	out := make([]domain.UsageRecord, 0, len(records)+1)
	found := false
	for _, r := range records {
		if !found && r.EntityID == entityID {
			r.Count++
			r.LastUsedMillis = now
			found = true
		}
		out = append(out, r)
	}
	if !found {
		out = append(out, domain.UsageRecord{
			EntityID:       entityID,
			Count:          1,
			LastUsedMillis: now,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].LastUsedMillis > out[j].LastUsedMillis
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// Recent returns the records used within the last withinMillis before now,
// most recent first.
func Recent(records []domain.UsageRecord, withinMillis, now int64) []domain.UsageRecord {
	cutoff := now - withinMillis
	out := make([]domain.UsageRecord, 0, len(records))
	for _, r := range records {
		if r.LastUsedMillis > cutoff {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastUsedMillis > out[j].LastUsedMillis
	})
	return out
}

// Favorites returns the records picked at least minCount times, most picked
// first.
func Favorites(records []domain.UsageRecord, minCount int) []domain.UsageRecord {
	out := make([]domain.UsageRecord, 0, len(records))
	for _, r := range records {
		if r.Count >= minCount {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
