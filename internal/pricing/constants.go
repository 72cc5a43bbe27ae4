package pricing

import "github.com/scentvault/storefront-backend/pkg/enums"

// PriceTierBound assigns Tier to best prices up to and including MaxPrice.
type PriceTierBound struct {
	MaxPrice float64
	Tier     enums.PriceTier
}

// DefaultPriceTiers is ordered by MaxPrice. Prices above the last bound are Luxury.
var DefaultPriceTiers = []PriceTierBound{
	{MaxPrice: 15000, Tier: enums.PriceTierBudget},
	{MaxPrice: 35000, Tier: enums.PriceTierMid},
	{MaxPrice: 70000, Tier: enums.PriceTierPremium},
}

// ComboWeights are the fixed ranking coefficients.
type ComboWeights struct {
	SingleSavings float64
	SingleMargin  float64
	SingleStock   float64

	PairSavings  float64
	PairMargin   float64
	PairAffinity float64
	PairStock    float64

	SameScent  int
	SameGender int
	SameTier   int
}

var DefaultComboWeights = ComboWeights{
	SingleSavings: 0.6,
	SingleMargin:  0.3,
	SingleStock:   0.1,

	PairSavings:  0.5,
	PairMargin:   0.3,
	PairAffinity: 5,
	PairStock:    0.2,

	SameScent:  2,
	SameGender: 1,
	SameTier:   1,
}
