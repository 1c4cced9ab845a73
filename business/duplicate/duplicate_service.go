package duplicate

import (
	"context"
	"fmt"
	"myBizHub/business/matching"
	"myBizHub/domain"
	"myBizHub/pkg/logger"
	"myBizHub/pkg/metrics"
	"strings"
)

// SupplierRepository contract interface
type SupplierRepository interface {
	FindActive(ctx context.Context) ([]domain.Supplier, error)
}

// CustomerRepository contract interface
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

type duplicateService struct {
	supplierRepo SupplierRepository
	customerRepo CustomerRepository
	cfg          matching.DuplicateConfig
}

func NewDuplicateService(supplierRepo SupplierRepository, customerRepo CustomerRepository, cfg matching.DuplicateConfig) *duplicateService {
	return &duplicateService{
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		cfg:          cfg,
	}
}

// CheckSupplier reports existing suppliers that look like the one being
// created, best match first.
func (s *duplicateService) CheckSupplier(ctx context.Context, candidate domain.PartialRecord) ([]domain.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when checking supplier duplicates")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// nothing to compare, same answer the engine gives
	if isBlank(candidate) {
		return []domain.MatchResult{}, nil
	}

	suppliers, err := s.supplierRepo.FindActive(ctx)
	if err != nil {
		logger.Error("Failed to load suppliers", "error", err)
		return nil, err
	}

	existing := make([]domain.ComparableRecord, len(suppliers))
	for i, sup := range suppliers {
		existing[i] = sup.Comparable()
	}

	return s.check(ctx, "supplier", candidate, existing), nil
}

func (s *duplicateService) CheckCustomer(ctx context.Context, candidate domain.PartialRecord) ([]domain.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when checking customer duplicates")
		return nil, fmt.Errorf("context error: %w", err)
	}

	// nothing to compare, same answer the engine gives
	if isBlank(candidate) {
		return []domain.MatchResult{}, nil
	}

	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to load customers", "error", err)
		return nil, err
	}

	existing := make([]domain.ComparableRecord, len(customers))
	for i, c := range customers {
		existing[i] = c.Comparable()
	}

	return s.check(ctx, "customer", candidate, existing), nil
}

func (s *duplicateService) check(ctx context.Context, entity string, candidate domain.PartialRecord, existing []domain.ComparableRecord) []domain.MatchResult {
	matches := matching.FindDuplicatesWithConfig(candidate, existing, s.cfg)

	metrics.DuplicateChecks.WithLabelValues(entity).Inc()
	metrics.DuplicateMatches.WithLabelValues(entity).Add(float64(len(matches)))

	logger.WithContext(ctx).Debugw("duplicate check",
		"entity", entity,
		"compared", len(existing),
		"matches", len(matches),
	)

	return matches
}

func isBlank(r domain.PartialRecord) bool {
	return strings.TrimSpace(r.Name) == "" &&
		strings.TrimSpace(r.Email) == "" &&
		strings.TrimSpace(r.Phone) == "" &&
		strings.TrimSpace(r.Website) == ""
}
