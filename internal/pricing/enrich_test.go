package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scentvault/storefront-backend/pkg/enums"
)

func f64(v float64) *float64 { return &v }

func TestEnrichUsesAverageMarketPriceAsReference(t *testing.T) {
	t.Parallel()

	got := Enrich([]RawProduct{{
		ID:           "p1",
		Price:        20000,
		MarketPrices: &MarketPrices{AverageMarketPrice: f64(25000)},
	}})
	require.Len(t, got, 1)

	p := got[0]
	assert.Equal(t, 25000.0, p.ReferencePrice)
	assert.Equal(t, 20000.0, p.BestPrice)
	assert.Equal(t, 5000.0, p.SavingsAmount)
	assert.Equal(t, 20, p.SavingsPercent)
	assert.Equal(t, enums.PriceTierMid, p.PriceTier)
	assert.Nil(t, p.MarginAmount)
	assert.Nil(t, p.MarginPercent)
}

func TestReferencePriceFallbacks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 18000.0, ReferencePrice(&MarketPrices{LowestMarketPrice: f64(18000)}, 20000))
	assert.Equal(t, 18000.0, ReferencePrice(&MarketPrices{AverageMarketPrice: f64(0), LowestMarketPrice: f64(18000)}, 20000))
	assert.Equal(t, 20000.0, ReferencePrice(&MarketPrices{}, 20000))
	assert.Equal(t, 20000.0, ReferencePrice(nil, 20000))
}

func TestEnrichActiveGroupBuyLowersBestPrice(t *testing.T) {
	t.Parallel()

	p := EnrichOne(RawProduct{
		Price:     40000,
		CostPrice: f64(25000),
		GroupBuy:  &GroupBuy{Status: enums.GroupBuyStatusActive, DiscountPrice: f64(32000)},
	})

	assert.True(t, p.GroupBuyActive)
	assert.Equal(t, 32000.0, p.BestPrice)
	assert.Equal(t, 40000.0, p.ReferencePrice)
	assert.Equal(t, 8000.0, p.SavingsAmount)
	require.NotNil(t, p.MarginAmount)
	assert.Equal(t, 7000.0, *p.MarginAmount)
	require.NotNil(t, p.MarginPercent)
	assert.Equal(t, 22, *p.MarginPercent)
}

func TestEnrichIgnoresInactiveOrInvalidGroupBuys(t *testing.T) {
	t.Parallel()

	for _, gb := range []*GroupBuy{
		{Status: enums.GroupBuyStatusScheduled, DiscountPrice: f64(1000)},
		{Status: enums.GroupBuyStatusActive, DiscountPrice: f64(0)},
		{Status: enums.GroupBuyStatusActive, DiscountPrice: f64(-5)},
		{Status: enums.GroupBuyStatusActive},
	} {
		p := EnrichOne(RawProduct{Price: 10000, GroupBuy: gb})
		assert.False(t, p.GroupBuyActive)
		assert.Equal(t, 10000.0, p.BestPrice)
	}
}

func TestEnrichSavingsNeverNegative(t *testing.T) {
	t.Parallel()

	p := EnrichOne(RawProduct{Price: 30000, MarketPrices: &MarketPrices{AverageMarketPrice: f64(25000)}})
	assert.Zero(t, p.SavingsAmount)
	assert.Zero(t, p.SavingsPercent)
}

func TestEnrichZeroPrice(t *testing.T) {
	t.Parallel()

	p := EnrichOne(RawProduct{Price: math.NaN(), CostPrice: f64(100)})
	assert.Zero(t, p.BasePrice)
	assert.Equal(t, enums.PriceTierUnknown, p.PriceTier)
	require.NotNil(t, p.MarginAmount)
	assert.Equal(t, -100.0, *p.MarginAmount)
	assert.Nil(t, p.MarginPercent)
}

func TestTierFor(t *testing.T) {
	t.Parallel()

	cases := []struct {
		price float64
		want  enums.PriceTier
	}{
		{price: 0, want: enums.PriceTierUnknown},
		{price: -1, want: enums.PriceTierUnknown},
		{price: 1, want: enums.PriceTierBudget},
		{price: 15000, want: enums.PriceTierBudget},
		{price: 15000.01, want: enums.PriceTierMid},
		{price: 35000, want: enums.PriceTierMid},
		{price: 70000, want: enums.PriceTierPremium},
		{price: 70001, want: enums.PriceTierLuxury},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.price), "price %v", tc.price)
	}
}

func TestEnrichKeepsOneOutputPerRow(t *testing.T) {
	t.Parallel()

	rows := []RawProduct{{ID: "a"}, {ID: "b", Price: 100}, {ID: "a"}}
	got := Enrich(rows)
	require.Len(t, got, 3)
	assert.Equal(t, "b", got[1].ID)
	assert.Empty(t, Enrich(nil))
}
