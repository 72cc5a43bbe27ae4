package enums

import "fmt"

// PriceTier buckets a product by the price a shopper actually pays.
type PriceTier string

const (
	PriceTierUnknown PriceTier = "Unknown"
	PriceTierBudget  PriceTier = "Budget"
	PriceTierMid     PriceTier = "Mid"
	PriceTierPremium PriceTier = "Premium"
	PriceTierLuxury  PriceTier = "Luxury"
)

var validPriceTiers = []PriceTier{
	PriceTierUnknown,
	PriceTierBudget,
	PriceTierMid,
	PriceTierPremium,
	PriceTierLuxury,
}

// String implements fmt.Stringer.
func (p PriceTier) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceTier.
func (p PriceTier) IsValid() bool {
	for _, candidate := range validPriceTiers {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceTier converts raw input into a PriceTier.
func ParsePriceTier(value string) (PriceTier, error) {
	for _, candidate := range validPriceTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price tier %q", value)
}
