package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/scentvault/storefront-backend/pkg/db/models"
)

func bandFromModel(m models.WeightRateBand) WeightRateBand {
	return WeightRateBand{
		MinWeight: m.MinWeight.InexactFloat64(),
		MaxWeight: m.MaxWeight.InexactFloat64(),
		Cost:      m.Cost.InexactFloat64(),
	}
}

func bandToModel(b WeightRateBand) models.WeightRateBand {
	return models.WeightRateBand{
		MinWeight: decimal.NewFromFloat(b.MinWeight),
		MaxWeight: decimal.NewFromFloat(b.MaxWeight),
		Cost:      decimal.NewFromFloat(b.Cost),
	}
}

func ruleFromModel(m models.VendorShippingRule) VendorShippingRule {
	return VendorShippingRule{
		VendorID:         m.VendorID.String(),
		MinQuantity:      m.MinQuantity,
		ShippingSchedule: m.ShippingSchedule,
		IsActive:         m.IsActive,
	}
}

func cartProductFromModel(m models.Product) *CartProduct {
	p := &CartProduct{
		ID:   m.ID.String(),
		Name: m.Name,
		Size: m.Size,
	}
	if m.Weight.Valid {
		w := m.Weight.Decimal.InexactFloat64()
		p.Weight = &w
	}
	if m.VendorID != nil {
		v := m.VendorID.String()
		p.VendorID = &v
	}
	return p
}
