package pricing

import (
	"math"

	"github.com/scentvault/storefront-backend/pkg/enums"
	"github.com/scentvault/storefront-backend/pkg/money"
)

// Enrich derives best, reference and savings figures for every row. The output
// has exactly one entry per input row, in input order.
func Enrich(rows []RawProduct) []EnrichedProduct {
	out := make([]EnrichedProduct, 0, len(rows))
	for _, row := range rows {
		out = append(out, EnrichOne(row))
	}
	return out
}

func EnrichOne(row RawProduct) EnrichedProduct {
	base := finiteOrZero(row.Price)
	reference := ReferencePrice(row.MarketPrices, base)

	best := base
	groupBuyActive := false
	if discount, ok := activeGroupBuyPrice(row.GroupBuy); ok {
		groupBuyActive = true
		best = math.Min(best, discount)
	}

	savings := math.Max(reference-best, 0)
	savingsPercent := 0
	if reference > 0 {
		savingsPercent = int(money.RoundHalfUp(savings / reference * 100))
	}

	p := EnrichedProduct{
		ID:             row.ID,
		Name:           row.Name,
		Brand:          row.Brand,
		ScentProfile:   row.ScentProfile,
		Gender:         row.Gender,
		StockQuantity:  row.StockQuantity,
		ImageURL:       row.ImageURL,
		BasePrice:      base,
		ReferencePrice: reference,
		BestPrice:      best,
		SavingsAmount:  savings,
		SavingsPercent: savingsPercent,
		PriceTier:      TierFor(best),
		GroupBuyActive: groupBuyActive,
	}

	if row.CostPrice != nil && isFinite(*row.CostPrice) {
		margin := best - *row.CostPrice
		p.MarginAmount = &margin
		if best > 0 {
			pct := int(money.RoundHalfUp(margin / best * 100))
			p.MarginPercent = &pct
		}
	}
	return p
}

// ReferencePrice prefers the market average, then the market low, then base.
// Zero or missing market prices are skipped.
func ReferencePrice(market *MarketPrices, base float64) float64 {
	if market != nil {
		if v, ok := positive(market.AverageMarketPrice); ok {
			return v
		}
		if v, ok := positive(market.LowestMarketPrice); ok {
			return v
		}
	}
	return base
}

// TierFor buckets a best price using DefaultPriceTiers.
func TierFor(bestPrice float64) enums.PriceTier {
	if !(bestPrice > 0) {
		return enums.PriceTierUnknown
	}
	for _, bound := range DefaultPriceTiers {
		if bestPrice <= bound.MaxPrice {
			return bound.Tier
		}
	}
	return enums.PriceTierLuxury
}

func activeGroupBuyPrice(gb *GroupBuy) (float64, bool) {
	if gb == nil || gb.Status != enums.GroupBuyStatusActive {
		return 0, false
	}
	return positive(gb.DiscountPrice)
}

func positive(v *float64) (float64, bool) {
	if v == nil || !isFinite(*v) || *v <= 0 {
		return 0, false
	}
	return *v, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func finiteOrZero(v float64) float64 {
	if !isFinite(v) {
		return 0
	}
	return v
}
