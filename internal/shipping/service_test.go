package shipping

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/pkg/db"
	"github.com/scentvault/storefront-backend/pkg/db/dbtest"
	"github.com/scentvault/storefront-backend/pkg/db/models"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
	"github.com/scentvault/storefront-backend/pkg/metrics"
	"github.com/scentvault/storefront-backend/pkg/redis"
)

type fakeCacheStore struct {
	data    map[string]string
	gets    int
	dels    int
	failGet bool
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{data: map[string]string{}}
}

func (f *fakeCacheStore) Get(_ context.Context, key string) (string, error) {
	f.gets++
	if f.failGet {
		return "", errors.New("connection reset")
	}
	v, ok := f.data[key]
	if !ok {
		return "", redisNil
	}
	return v, nil
}

func (f *fakeCacheStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.data[key] = value.(string)
	return nil
}

func (f *fakeCacheStore) Del(_ context.Context, keys ...string) error {
	f.dels++
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func (f *fakeCacheStore) CacheKey(parts ...string) string {
	return (&redis.Client{}).CacheKey(parts...)
}

type serviceFixture struct {
	conn    *gorm.DB
	svc     Service
	cache   *fakeCacheStore
	vendor  models.Vendor
	product models.Product
}

func newServiceFixture(t *testing.T, withCache bool) *serviceFixture {
	t.Helper()
	conn := dbtest.Open(t)

	vendor := models.Vendor{RepFullName: "Chiamaka Eze"}
	require.NoError(t, conn.Create(&vendor).Error)

	size := "100ml"
	product := models.Product{
		VendorID: &vendor.ID,
		Name:     "Oud Royale",
		Price:    decimal.NewFromInt(45000),
		Size:     &size,
		IsActive: true,
	}
	require.NoError(t, conn.Create(&product).Error)

	bands := []models.WeightRateBand{
		{MinWeight: decimal.RequireFromString("0.5"), MaxWeight: decimal.NewFromInt(1), Cost: decimal.NewFromInt(2500)},
		{MinWeight: decimal.NewFromInt(1), MaxWeight: decimal.NewFromInt(3), Cost: decimal.NewFromInt(3500)},
	}
	require.NoError(t, conn.Create(&bands).Error)

	rules := []models.VendorShippingRule{
		{VendorID: vendor.ID, MinQuantity: 1, ShippingSchedule: "Ships Tuesdays", IsActive: true},
		{VendorID: vendor.ID, MinQuantity: 3, ShippingSchedule: "Ships next day", IsActive: true},
		{VendorID: vendor.ID, MinQuantity: 2, ShippingSchedule: "Paused tier", IsActive: false},
	}
	require.NoError(t, conn.Create(&rules).Error)

	var store *fakeCacheStore
	var cache *SnapshotCache
	if withCache {
		store = newFakeCacheStore()
		cache = NewSnapshotCache(store, time.Minute)
	}

	svc, err := NewService(NewRepository(conn), db.NewFromConn(conn), cache, metrics.NewShippingMetrics(prometheus.NewRegistry()), logger.Nop())
	require.NoError(t, err)

	return &serviceFixture{conn: conn, svc: svc, cache: store, vendor: vendor, product: product}
}

func TestQuoteHydratesProductsFromCatalog(t *testing.T) {
	f := newServiceFixture(t, false)

	quote, err := f.svc.Quote(context.Background(), Input{Items: []CartItem{
		{ProductID: f.product.ID.String(), Quantity: 2},
	}})
	require.NoError(t, err)

	assert.InDelta(t, 0.8, quote.TotalWeight, 1e-9)
	assert.Equal(t, 2500.0, quote.Cost)
	assert.Equal(t, "Chiamaka Eze: Ships Tuesdays", quote.ConsolidatedSchedule)
}

func TestQuoteIgnoresInactiveRulesAndPicksHighestTier(t *testing.T) {
	f := newServiceFixture(t, false)

	quote, err := f.svc.Quote(context.Background(), Input{Items: []CartItem{
		{ProductID: f.product.ID.String(), Quantity: 2},
		{ProductID: "gift-wrap", Quantity: 1, Product: &CartProduct{Weight: floatPtr(0.1), VendorID: strPtr(f.vendor.ID.String())}},
	}})
	require.NoError(t, err)

	assert.Equal(t, "Chiamaka Eze: Ships next day", quote.ConsolidatedSchedule)
	assert.InDelta(t, 0.9, quote.TotalWeight, 1e-9)
}

func TestQuoteUnknownProductUsesDefaultWeight(t *testing.T) {
	f := newServiceFixture(t, false)

	quote, err := f.svc.Quote(context.Background(), Input{Items: []CartItem{
		{ProductID: uuid.NewString(), Quantity: 1},
		{ProductID: "not-a-uuid", Quantity: 1},
	}})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, quote.TotalWeight, 1e-9)
	assert.Equal(t, 3500.0, quote.Cost)
	assert.Equal(t, StandardShipping, quote.ConsolidatedSchedule)
}

func TestQuoteBelowLowestBandIsZero(t *testing.T) {
	f := newServiceFixture(t, false)

	quote, err := f.svc.Quote(context.Background(), Input{Items: []CartItem{
		{ProductID: "sample", Quantity: 1, Product: &CartProduct{Weight: floatPtr(0.2)}},
	}})
	require.NoError(t, err)
	assert.Zero(t, quote.Cost)
}

func TestQuoteUsesSnapshotCache(t *testing.T) {
	f := newServiceFixture(t, true)
	ctx := context.Background()
	input := Input{Items: []CartItem{{ProductID: f.product.ID.String(), Quantity: 1}}}

	first, err := f.svc.Quote(ctx, input)
	require.NoError(t, err)
	assert.Len(t, f.cache.data, 1)

	// Drop the bands underneath the cache; the cached snapshot still answers.
	require.NoError(t, f.conn.Where("1 = 1").Delete(&models.WeightRateBand{}).Error)
	second, err := f.svc.Quote(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.Cost, second.Cost)

	_, err = f.svc.ReplaceWeightRateBands(ctx, []WeightRateBand{{MinWeight: 0, MaxWeight: 10, Cost: 999}})
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.dels)

	third, err := f.svc.Quote(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 999.0, third.Cost)
}

func TestQuoteFallsThroughOnCacheFailure(t *testing.T) {
	f := newServiceFixture(t, true)
	f.cache.failGet = true

	quote, err := f.svc.Quote(context.Background(), Input{Items: []CartItem{
		{ProductID: f.product.ID.String(), Quantity: 1},
	}})
	require.NoError(t, err)
	assert.Equal(t, 2500.0, quote.Cost)
}

func TestReplaceWeightRateBandsValidates(t *testing.T) {
	f := newServiceFixture(t, false)

	_, err := f.svc.ReplaceWeightRateBands(context.Background(), []WeightRateBand{
		{MinWeight: -1, MaxWeight: 1, Cost: 100},
		{MinWeight: 2, MaxWeight: 2, Cost: -5},
	})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Len(t, typed.Details(), 3)

	bands, err := f.svc.WeightRateBands(context.Background())
	require.NoError(t, err)
	assert.Len(t, bands, 2)
}

func TestReplaceWeightRateBandsWarnsOnOverlapAndGap(t *testing.T) {
	f := newServiceFixture(t, false)

	result, err := f.svc.ReplaceWeightRateBands(context.Background(), []WeightRateBand{
		{MinWeight: 3, MaxWeight: 5, Cost: 6000},
		{MinWeight: 0, MaxWeight: 2, Cost: 2000},
		{MinWeight: 1.5, MaxWeight: 2.5, Cost: 3000},
	})
	require.NoError(t, err)
	assert.Len(t, result.Warnings, 2)
	assert.Equal(t, 0.0, result.Bands[0].MinWeight)

	bands, err := f.svc.WeightRateBands(context.Background())
	require.NoError(t, err)
	assert.Len(t, bands, 3)
	assert.Equal(t, 2000.0, WeightBasedCost(1.8, bands))
}

func TestReplaceVendorRules(t *testing.T) {
	f := newServiceFixture(t, false)
	ctx := context.Background()
	vendorID := f.vendor.ID.String()

	stored, err := f.svc.ReplaceVendorRules(ctx, []VendorShippingRule{
		{VendorID: vendorID, MinQuantity: 5, ShippingSchedule: " Ships same day ", IsActive: true},
		{VendorID: vendorID, MinQuantity: 1, ShippingSchedule: "Ships Fridays", IsActive: false},
	})
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 1, stored[0].MinQuantity)
	assert.Equal(t, "Ships same day", stored[1].ShippingSchedule)

	all, err := f.svc.VendorRules(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.False(t, all[0].IsActive)
}

func TestReplaceVendorRulesRejectsDuplicates(t *testing.T) {
	f := newServiceFixture(t, false)
	vendorID := f.vendor.ID.String()

	_, err := f.svc.ReplaceVendorRules(context.Background(), []VendorShippingRule{
		{VendorID: vendorID, MinQuantity: 2, ShippingSchedule: "A", IsActive: true},
		{VendorID: vendorID, MinQuantity: 2, ShippingSchedule: "B", IsActive: true},
		{VendorID: "nope", MinQuantity: 0, ShippingSchedule: ""},
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Len(t, pkgerrors.As(err).Details(), 4)
}

func TestNewServiceRequiresCollaborators(t *testing.T) {
	_, err := NewService(nil, nil, nil, nil, nil)
	assert.Error(t, err)
}
