package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentvault/storefront-backend/internal/orderitems"
	"github.com/scentvault/storefront-backend/internal/orders"
	"github.com/scentvault/storefront-backend/internal/pricing"
	"github.com/scentvault/storefront-backend/internal/shipping"
	pkgAuth "github.com/scentvault/storefront-backend/pkg/auth"
	"github.com/scentvault/storefront-backend/pkg/config"
	"github.com/scentvault/storefront-backend/pkg/enums"
	"github.com/scentvault/storefront-backend/pkg/logger"
	"github.com/scentvault/storefront-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubShipping struct{}

func (stubShipping) Quote(context.Context, shipping.Input) (*shipping.Quote, error) {
	return &shipping.Quote{Cost: 1500, ConsolidatedSchedule: shipping.StandardShipping}, nil
}

func (stubShipping) WeightRateBands(context.Context) ([]shipping.WeightRateBand, error) {
	return []shipping.WeightRateBand{{MinWeight: 0, MaxWeight: 1, Cost: 1500}}, nil
}

func (stubShipping) ReplaceWeightRateBands(_ context.Context, bands []shipping.WeightRateBand) (*shipping.BandReplaceResult, error) {
	return &shipping.BandReplaceResult{Bands: bands}, nil
}

func (stubShipping) VendorRules(context.Context) ([]shipping.VendorShippingRule, error) {
	return nil, nil
}

func (stubShipping) ReplaceVendorRules(_ context.Context, rules []shipping.VendorShippingRule) ([]shipping.VendorShippingRule, error) {
	return rules, nil
}

type stubPricing struct{}

func (stubPricing) EnrichedCatalog(context.Context, pricing.ProductFilter) ([]pricing.EnrichedProduct, error) {
	return []pricing.EnrichedProduct{}, nil
}

func (stubPricing) Combos(context.Context, pricing.ComboQuery) ([]pricing.Combo, error) {
	return []pricing.Combo{}, nil
}

func (stubPricing) TopDeals(context.Context, int) ([]pricing.Deal, error) {
	return []pricing.Deal{}, nil
}

func (stubPricing) ProductSizes(_ context.Context, id string) (*pricing.ProductSizes, error) {
	return &pricing.ProductSizes{ProductID: id, Sizes: []string{}}, nil
}

type stubOrders struct{}

func (stubOrders) Normalize(_ context.Context, raw []byte) ([]orderitems.NormalizedOrderItem, error) {
	return orderitems.DecodeAll(raw)
}

func (stubOrders) CreateDraft(context.Context, orders.DraftInput) (*orders.DraftResult, error) {
	return &orders.DraftResult{Order: &orders.OrderView{}}, nil
}

func (stubOrders) Get(context.Context, string) (*orders.OrderView, error) {
	return &orders.OrderView{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "8080"},
		JWT: config.JWTConfig{Secret: "router-test-secret", Issuer: "scentvault-test", ExpirationMinutes: 15},
		Pricing: config.PricingConfig{
			DefaultPairSample: 20,
			MaxPairSample:     60,
			DealsPageSize:     10,
			CatalogLimit:      200,
		},
	}
}

func newTestRouter(t *testing.T) (http.Handler, *config.Config) {
	t.Helper()
	cfg := testConfig()
	reg := prometheus.NewRegistry()
	h := NewRouter(cfg, logger.Nop(), reg, metrics.NewHTTPMetrics(reg), stubPinger{}, nil, stubShipping{}, stubPricing{}, stubOrders{})
	return h, cfg
}

func staffToken(t *testing.T, cfg *config.Config, role enums.StaffRole) string {
	t.Helper()
	token, err := pkgAuth.MintStaffToken(cfg.JWT, time.Now(), pkgAuth.StaffTokenPayload{StaffID: "staff-1", Role: role})
	require.NoError(t, err)
	return token
}

func do(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	cases := []struct {
		method, target, body string
		want                 int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/api/public/ping", "", http.StatusOK},
		{http.MethodGet, "/api/v1/products", "", http.StatusOK},
		{http.MethodGet, "/api/v1/products/abc/sizes", "", http.StatusOK},
		{http.MethodGet, "/api/v1/deals/combos", "", http.StatusOK},
		{http.MethodGet, "/api/v1/deals/top", "", http.StatusOK},
		{http.MethodPost, "/api/v1/shipping/quote", `{"items":[{"product_id":"p","quantity":1}]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/orders/normalize", `{"items":[]}`, http.StatusOK},
		{http.MethodPost, "/api/v1/orders", `{"items":[{"name":"Oud"}]}`, http.StatusCreated},
		{http.MethodGet, "/api/v1/orders/abc", "", http.StatusOK},
		{http.MethodGet, "/api/v1/missing", "", http.StatusNotFound},
	}

	for _, tc := range cases {
		rec := do(h, tc.method, tc.target, tc.body, "")
		assert.Equal(t, tc.want, rec.Code, "%s %s: %s", tc.method, tc.target, rec.Body.String())
	}
}

func TestReadinessReportsDisabledRedis(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := do(h, http.MethodGet, "/health/ready", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redis":"disabled"`)
	assert.Contains(t, rec.Body.String(), `"database":"ok"`)
}

func TestMetricsEndpointExposesHTTPMetrics(t *testing.T) {
	h, _ := newTestRouter(t)
	_ = do(h, http.MethodGet, "/api/public/ping", "", "")

	rec := do(h, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/public/ping")
}

func TestAdminRoutesRequireToken(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(h, http.MethodGet, "/api/admin/v1/ping", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(h, http.MethodGet, "/api/admin/v1/ping", "", "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesEnforceRoles(t *testing.T) {
	h, cfg := newTestRouter(t)
	admin := staffToken(t, cfg, enums.StaffRoleAdmin)
	catalog := staffToken(t, cfg, enums.StaffRoleCatalogManager)
	support := staffToken(t, cfg, enums.StaffRoleSupport)

	rec := do(h, http.MethodGet, "/api/admin/v1/ping", "", support)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":"support"`)

	rec = do(h, http.MethodGet, "/api/admin/v1/shipping/weight-rates", "", admin)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/admin/v1/shipping/weight-rates", "", catalog)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(h, http.MethodGet, "/api/admin/v1/deals/top", "", catalog)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(h, http.MethodGet, "/api/admin/v1/deals/top", "", support)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
