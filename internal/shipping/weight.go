package shipping

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/scentvault/storefront-backend/internal/sizes"
)

// WeightTier adds a packaging allowance to liquids up to MaxML milliliters.
// A zero MaxML marks the open-ended last tier.
type WeightTier struct {
	MaxML       int
	PackagingKG decimal.Decimal
}

// DefaultWeightTiers is ordered by MaxML ascending.
var DefaultWeightTiers = []WeightTier{
	{MaxML: 30, PackagingKG: decimal.RequireFromString("0.15")},
	{MaxML: 60, PackagingKG: decimal.RequireFromString("0.20")},
	{MaxML: 100, PackagingKG: decimal.RequireFromString("0.30")},
	{MaxML: 0, PackagingKG: decimal.RequireFromString("0.50")},
}

var (
	// DefaultUnitWeightKG applies when a product has neither weight nor a parseable size.
	DefaultUnitWeightKG = decimal.RequireFromString("0.5")
	// MultiAddressFloorKG is the minimum unit weight when items ship to several addresses.
	MultiAddressFloorKG = decimal.RequireFromString("0.5")

	millilitersPerKG = decimal.NewFromInt(1000)
)

// UnitWeight estimates the shipping weight in kilograms of a single unit.
func UnitWeight(p *CartProduct, multiAddress bool) float64 {
	return unitWeight(p, multiAddress).InexactFloat64()
}

// TotalWeight sums unit weight times quantity across the cart.
func TotalWeight(items []CartItem, multiAddress bool) float64 {
	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		unit := unitWeight(item.Product, multiAddress)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.InexactFloat64()
}

// LiquidWeight derives a unit weight from a size token using the tier table.
func LiquidWeight(size string, tiers []WeightTier) (decimal.Decimal, bool) {
	ml, ok := sizes.Milliliters(sizes.NormalizeToken(size))
	if !ok || ml <= 0 || len(tiers) == 0 {
		return decimal.Zero, false
	}
	liquid := decimal.NewFromInt(int64(ml)).Div(millilitersPerKG)
	for _, tier := range tiers {
		if tier.MaxML == 0 || ml <= tier.MaxML {
			return liquid.Add(tier.PackagingKG), true
		}
	}
	return liquid.Add(tiers[len(tiers)-1].PackagingKG), true
}

func unitWeight(p *CartProduct, multiAddress bool) decimal.Decimal {
	weight := DefaultUnitWeightKG
	switch {
	case p != nil && validWeight(p.Weight):
		weight = decimal.NewFromFloat(*p.Weight)
	case p != nil && p.Size != nil:
		if derived, ok := LiquidWeight(*p.Size, DefaultWeightTiers); ok {
			weight = derived
		}
	}
	if multiAddress && weight.LessThan(MultiAddressFloorKG) {
		weight = MultiAddressFloorKG
	}
	return weight
}

func validWeight(w *float64) bool {
	if w == nil {
		return false
	}
	return !math.IsNaN(*w) && !math.IsInf(*w, 0) && *w >= 0
}
