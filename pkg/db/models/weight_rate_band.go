package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WeightRateBand prices shipping for totals in [MinWeight, MaxWeight) kilograms.
type WeightRateBand struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	MinWeight decimal.Decimal `gorm:"column:min_weight;type:numeric(8,3);not null"`
	MaxWeight decimal.Decimal `gorm:"column:max_weight;type:numeric(8,3);not null"`
	Cost      decimal.Decimal `gorm:"column:cost;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns an id when the caller did not.
func (b *WeightRateBand) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
