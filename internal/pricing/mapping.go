package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/scentvault/storefront-backend/pkg/db/models"
)

func rawFromModel(m models.Product) RawProduct {
	raw := RawProduct{
		ID:            m.ID.String(),
		Name:          m.Name,
		Brand:         m.Brand,
		Price:         m.Price.InexactFloat64(),
		CostPrice:     nullDecimal(m.CostPrice),
		StockQuantity: m.StockQuantity,
		ScentProfile:  m.ScentProfile,
		Gender:        m.Gender,
		ImageURL:      m.ImageURL,
	}
	if pi := m.PriceIntelligence; pi != nil {
		raw.MarketPrices = &MarketPrices{
			AverageMarketPrice: nullDecimal(pi.AverageMarketPrice),
			LowestMarketPrice:  nullDecimal(pi.LowestMarketPrice),
			HighestMarketPrice: nullDecimal(pi.HighestMarketPrice),
		}
	}
	if gb := m.GroupBuyCampaign; gb != nil {
		discount := gb.DiscountPrice.InexactFloat64()
		raw.GroupBuy = &GroupBuy{
			ID:            gb.ID.String(),
			Status:        gb.Status,
			DiscountPrice: &discount,
		}
	}
	return raw
}

func nullDecimal(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	v := d.Decimal.InexactFloat64()
	return &v
}
