package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/pkg/enums"
)

// Order is a checkout draft awaiting payment.
type Order struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Status           enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending_payment'"`
	MultiAddress     bool              `gorm:"column:multi_address;not null;default:false"`
	Subtotal         decimal.Decimal   `gorm:"column:subtotal;type:numeric(14,2);not null"`
	ShippingCost     decimal.Decimal   `gorm:"column:shipping_cost;type:numeric(12,2);not null"`
	Total            decimal.Decimal   `gorm:"column:total;type:numeric(14,2);not null"`
	TotalWeightKG    decimal.Decimal   `gorm:"column:total_weight_kg;type:numeric(10,3);not null"`
	ShippingSchedule string            `gorm:"column:shipping_schedule;not null"`
	Items            []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate assigns an id when the caller did not.
func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
