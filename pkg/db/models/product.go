package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/pkg/types"
)

// Product represents a fragrance listing in the catalog.
type Product struct {
	ID                uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	VendorID          *uuid.UUID          `gorm:"column:vendor_id;type:uuid"`
	Name              string              `gorm:"column:name;not null"`
	Brand             string              `gorm:"column:brand;not null;default:''"`
	Price             decimal.Decimal     `gorm:"column:price;type:numeric(12,2);not null;default:0"`
	CostPrice         decimal.NullDecimal `gorm:"column:cost_price;type:numeric(12,2)"`
	StockQuantity     int                 `gorm:"column:stock_quantity;not null;default:0"`
	ScentProfile      string              `gorm:"column:scent_profile;not null;default:''"`
	Gender            string              `gorm:"column:gender;not null;default:''"`
	Size              *string             `gorm:"column:size"`
	Sizes             types.SizeList      `gorm:"column:sizes"`
	Weight            decimal.NullDecimal `gorm:"column:weight;type:numeric(8,3)"`
	ImageURL          *string             `gorm:"column:image_url"`
	IsActive          bool                `gorm:"column:is_active;not null"`
	ActiveGroupBuyID  *uuid.UUID          `gorm:"column:active_group_buy_id;type:uuid"`
	Vendor            *Vendor             `gorm:"foreignKey:VendorID"`
	PriceIntelligence *PriceIntelligence  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	GroupBuyCampaign  *GroupBuyCampaign   `gorm:"foreignKey:ActiveGroupBuyID"`
	CreatedAt         time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an id when the caller did not.
func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
