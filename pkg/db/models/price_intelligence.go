package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceIntelligence stores market prices observed for a product elsewhere.
type PriceIntelligence struct {
	ProductID          uuid.UUID           `gorm:"column:product_id;type:uuid;primaryKey"`
	AverageMarketPrice decimal.NullDecimal `gorm:"column:average_market_price;type:numeric(12,2)"`
	LowestMarketPrice  decimal.NullDecimal `gorm:"column:lowest_market_price;type:numeric(12,2)"`
	HighestMarketPrice decimal.NullDecimal `gorm:"column:highest_market_price;type:numeric(12,2)"`
	UpdatedAt          time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the singular table name used by the migrations.
func (PriceIntelligence) TableName() string {
	return "price_intelligence"
}
