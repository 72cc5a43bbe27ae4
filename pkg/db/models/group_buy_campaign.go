package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/pkg/enums"
)

// GroupBuyCampaign offers a discounted price once enough shoppers join.
type GroupBuyCampaign struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	ProductID      uuid.UUID            `gorm:"column:product_id;type:uuid;not null"`
	DiscountPrice  decimal.Decimal      `gorm:"column:discount_price;type:numeric(12,2);not null"`
	Status         enums.GroupBuyStatus `gorm:"column:status;type:text;not null;default:'scheduled'"`
	TargetQuantity int                  `gorm:"column:target_quantity;not null;default:0"`
	EndsAt         *time.Time           `gorm:"column:ends_at"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns an id when the caller did not.
func (g *GroupBuyCampaign) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}
