package models

// All is every persisted model in dependency order.
func All() []any {
	return []any{
		&Vendor{},
		&GroupBuyCampaign{},
		&Product{},
		&PriceIntelligence{},
		&WeightRateBand{},
		&VendorShippingRule{},
		&Order{},
		&OrderItem{},
	}
}
