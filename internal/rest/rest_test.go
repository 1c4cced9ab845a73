package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myBizHub/domain"
)

type fakeDuplicateService struct {
	got     domain.PartialRecord
	matches []domain.MatchResult
	err     error
}

func (f *fakeDuplicateService) CheckSupplier(ctx context.Context, c domain.PartialRecord) ([]domain.MatchResult, error) {
	f.got = c
	return f.matches, f.err
}

func (f *fakeDuplicateService) CheckCustomer(ctx context.Context, c domain.PartialRecord) ([]domain.MatchResult, error) {
	f.got = c
	return f.matches, f.err
}

type fakeSearchService struct {
	userID uint
	query  string
	limit  int
}

func (f *fakeSearchService) SearchProducts(ctx context.Context, userID uint, query string, limit int) ([]domain.RankedItem, error) {
	f.userID, f.query, f.limit = userID, query, limit
	return []domain.RankedItem{{Item: domain.SearchableItem{ID: "1", Text: "iPhone 15", Kind: domain.ItemKindProduct}, Score: 1.5}}, nil
}

func (f *fakeSearchService) SearchCustomers(ctx context.Context, userID uint, query string, limit int) ([]domain.RankedCandidate, error) {
	f.userID, f.query, f.limit = userID, query, limit
	return []domain.RankedCandidate{{Candidate: domain.StructuredCandidate{ID: "9", Name: "Ana Ruiz"}, Score: 3}}, nil
}

type fakeUsageService struct {
	scope    domain.UsageScope
	entityID string
	within   time.Duration
	minCount int
	err      error
}

func (f *fakeUsageService) Record(ctx context.Context, scope domain.UsageScope, userID uint, entityID string) ([]domain.UsageRecord, error) {
	f.scope, f.entityID = scope, entityID
	return []domain.UsageRecord{{EntityID: entityID, Count: 1, LastUsedMillis: 5}}, f.err
}

func (f *fakeUsageService) Recent(ctx context.Context, scope domain.UsageScope, userID uint, within time.Duration) ([]domain.UsageRecord, error) {
	f.scope, f.within = scope, within
	return []domain.UsageRecord{}, f.err
}

func (f *fakeUsageService) Favorites(ctx context.Context, scope domain.UsageScope, userID uint, minCount int) ([]domain.UsageRecord, error) {
	f.scope, f.minCount = scope, minCount
	return []domain.UsageRecord{}, f.err
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(3))
	return c, rec
}

func TestDuplicateHandler_CheckSupplier(t *testing.T) {
	svc := &fakeDuplicateService{matches: []domain.MatchResult{{
		Record:  domain.ComparableRecord{ID: "1", Name: "TechDistributor SA"},
		Score:   0.94,
		Reasons: []string{domain.ReasonSimilarName},
	}}}
	h := NewDuplicateHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/v1/suppliers/duplicates", `{"name":"Tech Distributor SA","email":"x@y.com"}`)
	require.NoError(t, h.CheckSupplier(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.PartialRecord{Name: "Tech Distributor SA", Email: "x@y.com"}, svc.got)
	assert.Contains(t, rec.Body.String(), "Nombre similar")
	assert.Contains(t, rec.Body.String(), `"score":0.94`)
}

func TestDuplicateHandler_Errors(t *testing.T) {
	svc := &fakeDuplicateService{}
	h := NewDuplicateHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/v1/customers/duplicates", `{"name":`)
	require.NoError(t, h.CheckCustomer(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodPost, "/api/v1/customers/duplicates", `{"phone":"`+strings.Repeat("1", 65)+`"}`)
	require.NoError(t, h.CheckCustomer(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = errors.New("db down")
	c, rec = newContext(http.MethodPost, "/api/v1/customers/duplicates", `{"name":"Acme"}`)
	require.NoError(t, h.CheckCustomer(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchHandler(t *testing.T) {
	svc := &fakeSearchService{}
	h := NewSearchHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/search/products?q=iph&n=5", "")
	require.NoError(t, h.SearchProducts(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), svc.userID)
	assert.Equal(t, "iph", svc.query)
	assert.Equal(t, 5, svc.limit)
	assert.Contains(t, rec.Body.String(), "iPhone 15")

	c, rec = newContext(http.MethodGet, "/api/v1/search/customers?q=ana", "")
	require.NoError(t, h.SearchCustomers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, svc.limit)
	assert.Contains(t, rec.Body.String(), "Ana Ruiz")

	c, rec = newContext(http.MethodGet, "/api/v1/search/products?n=lots", "")
	require.NoError(t, h.SearchProducts(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsageHandler_Record(t *testing.T) {
	svc := &fakeUsageService{}
	h := NewUsageHandler(svc)

	c, rec := newContext(http.MethodPost, "/api/v1/usage/products", `{"entity_id":"p1"}`)
	c.SetParamNames("scope")
	c.SetParamValues("products")
	require.NoError(t, h.Record(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.UsageScopeProducts, svc.scope)
	assert.Equal(t, "p1", svc.entityID)
	assert.Contains(t, rec.Body.String(), `"entityId":"p1"`)

	c, rec = newContext(http.MethodPost, "/api/v1/usage/orders", `{"entity_id":"p1"}`)
	c.SetParamNames("scope")
	c.SetParamValues("orders")
	require.NoError(t, h.Record(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodPost, "/api/v1/usage/products", `{}`)
	c.SetParamNames("scope")
	c.SetParamValues("products")
	require.NoError(t, h.Record(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.err = domain.ErrUsageLocked
	c, rec = newContext(http.MethodPost, "/api/v1/usage/products", `{"entity_id":"p1"}`)
	c.SetParamNames("scope")
	c.SetParamValues("products")
	require.NoError(t, h.Record(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUsageHandler_Queries(t *testing.T) {
	svc := &fakeUsageService{}
	h := NewUsageHandler(svc)

	c, rec := newContext(http.MethodGet, "/api/v1/usage/customers/recent?within_ms=60000", "")
	c.SetParamNames("scope")
	c.SetParamValues("customers")
	require.NoError(t, h.Recent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Minute, svc.within)

	c, rec = newContext(http.MethodGet, "/api/v1/usage/customers/recent", "")
	c.SetParamNames("scope")
	c.SetParamValues("customers")
	require.NoError(t, h.Recent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultRecentWindow, svc.within)

	c, rec = newContext(http.MethodGet, "/api/v1/usage/customers/recent?within_ms=-1", "")
	c.SetParamNames("scope")
	c.SetParamValues("customers")
	require.NoError(t, h.Recent(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newContext(http.MethodGet, "/api/v1/usage/suppliers/favorites?min_count=4", "")
	c.SetParamNames("scope")
	c.SetParamValues("suppliers")
	require.NoError(t, h.Favorites(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.UsageScopeSuppliers, svc.scope)
	assert.Equal(t, 4, svc.minCount)
}

func TestHealthHandler(t *testing.T) {
	h := NewHealthHandler(map[string]Pinger{
		"postgres": func(ctx context.Context) error { return nil },
	})
	c, rec := newContext(http.MethodGet, "/healthz", "")
	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	h = NewHealthHandler(map[string]Pinger{
		"redis": func(ctx context.Context) error { return errors.New("connection refused") },
	})
	c, rec = newContext(http.MethodGet, "/healthz", "")
	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")
}
