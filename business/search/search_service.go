package search

import (
	"context"
	"fmt"
	"myBizHub/business/matching"
	"myBizHub/domain"
	"myBizHub/pkg/logger"
	"myBizHub/pkg/metrics"
	"strings"
	"time"
)

// ProductRepository contract interface
type ProductRepository interface {
	FindAll(ctx context.Context) ([]domain.Product, error)
}

// CategoryRepository contract interface
type CategoryRepository interface {
	FindAll(ctx context.Context) ([]domain.Category, error)
}

// CustomerRepository contract interface
type CustomerRepository interface {
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

// UsageReader returns a user's usage history for a scope.
type UsageReader interface {
	Records(ctx context.Context, scope domain.UsageScope, userID uint) ([]domain.UsageRecord, error)
}

type Config struct {
	Rank         matching.RankConfig
	DefaultLimit int
	MaxLimit     int

	// products picked within RecentWindow are labelled recent, otherwise
	// products picked at least PopularMinCount times are labelled popular
	RecentWindow    time.Duration
	PopularMinCount int
}

func DefaultConfig() Config {
	return Config{
		Rank:            matching.DefaultRankConfig(),
		DefaultLimit:    10,
		MaxLimit:        50,
		RecentWindow:    24 * time.Hour,
		PopularMinCount: 3,
	}
}

type searchService struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	customerRepo CustomerRepository
	usage        UsageReader
	cfg          Config
	clock        func() time.Time
}

func NewSearchService(
	productRepo ProductRepository,
	categoryRepo CategoryRepository,
	customerRepo CustomerRepository,
	usage UsageReader,
	cfg Config,
	clock func() time.Time,
) *searchService {
	if clock == nil {
		clock = time.Now
	}
	return &searchService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		customerRepo: customerRepo,
		usage:        usage,
		cfg:          cfg,
		clock:        clock,
	}
}

// SearchProducts ranks the catalogue (products, SKUs, categories, brands)
// for query, boosted by what userID picked before. Each id appears once.
func (s *searchService) SearchProducts(ctx context.Context, userID uint, query string, limit int) ([]domain.RankedItem, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when searching products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all products", "error", err)
		return nil, err
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", "error", err)
		return nil, err
	}

	usage, err := s.usage.Records(ctx, domain.UsageScopeProducts, userID)
	if err != nil {
		return nil, err
	}

	items := catalogueItems(products, categories)

	start := time.Now()
	ranked := matching.RankScored(query, items, usage, s.cfg.Rank)
	metrics.RankLatency.WithLabelValues("products").Observe(time.Since(start).Seconds())
	metrics.SearchRequests.WithLabelValues("products").Inc()

	ranked = dedupeByID(ranked)
	s.labelFromUsage(ranked, usage)

	return truncate(ranked, s.limit(limit)), nil
}

// SearchCustomers ranks customers on name, phone and email.
func (s *searchService) SearchCustomers(ctx context.Context, userID uint, query string, limit int) ([]domain.RankedCandidate, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when searching customers")
		return nil, fmt.Errorf("context error: %w", err)
	}

	customers, err := s.customerRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all customers", "error", err)
		return nil, err
	}

	usage, err := s.usage.Records(ctx, domain.UsageScopeCustomers, userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.StructuredCandidate, len(customers))
	for i, c := range customers {
		candidates[i] = c.Candidate()
	}

	start := time.Now()
	ranked := matching.RankStructuredScored(query, candidates, usage, s.cfg.Rank)
	metrics.RankLatency.WithLabelValues("customers").Observe(time.Since(start).Seconds())
	metrics.SearchRequests.WithLabelValues("customers").Inc()

	return truncate(ranked, s.limit(limit)), nil
}

func (s *searchService) limit(n int) int {
	if n <= 0 {
		return s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && n > s.cfg.MaxLimit {
		return s.cfg.MaxLimit
	}
	return n
}

func (s *searchService) labelFromUsage(ranked []domain.RankedItem, usage []domain.UsageRecord) {
	recent := make(map[string]bool)
	for _, r := range matching.Recent(usage, s.cfg.RecentWindow.Milliseconds(), s.clock().UnixMilli()) {
		recent[r.EntityID] = true
	}
	popular := make(map[string]bool)
	for _, r := range matching.Favorites(usage, s.cfg.PopularMinCount) {
		popular[r.EntityID] = true
	}

	for i := range ranked {
		item := &ranked[i].Item
		if item.Kind != domain.ItemKindProduct && item.Kind != domain.ItemKindSKU {
			continue
		}
		switch {
		case recent[item.ID]:
			item.Kind = domain.ItemKindRecent
		case popular[item.ID]:
			item.Kind = domain.ItemKindPopular
		}
	}
}

func catalogueItems(products []domain.Product, categories []domain.Category) []domain.SearchableItem {
	items := make([]domain.SearchableItem, 0, len(products)*2+len(categories))
	brands := make(map[string]bool)
	var brandItems []domain.SearchableItem

	for _, p := range products {
		items = append(items, p.SearchItems()...)

		brand := strings.TrimSpace(p.Brand)
		key := strings.ToLower(brand)
		if brand == "" || brands[key] {
			continue
		}
		brands[key] = true
		brandItems = append(brandItems, domain.SearchableItem{
			ID:   "brand:" + key,
			Text: brand,
			Kind: domain.ItemKindBrand,
		})
	}

	for _, c := range categories {
		items = append(items, c.SearchItem())
	}
	return append(items, brandItems...)
}

// dedupeByID keeps the best-ranked entry of every id; a product matched by
// both name and SKU is listed once.
func dedupeByID(ranked []domain.RankedItem) []domain.RankedItem {
	seen := make(map[string]bool, len(ranked))
	out := ranked[:0]
	for _, r := range ranked {
		if seen[r.Item.ID] {
			continue
		}
		seen[r.Item.ID] = true
		out = append(out, r)
	}
	return out
}

func truncate[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}
