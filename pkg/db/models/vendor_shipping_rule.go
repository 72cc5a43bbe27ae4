package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VendorShippingRule maps a vendor's minimum order quantity to a shipping schedule.
type VendorShippingRule struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VendorID         uuid.UUID `gorm:"column:vendor_id;type:uuid;not null;uniqueIndex:idx_vendor_shipping_rules_vendor_min_qty"`
	MinQuantity      int       `gorm:"column:min_quantity;not null;uniqueIndex:idx_vendor_shipping_rules_vendor_min_qty"`
	ShippingSchedule string    `gorm:"column:shipping_schedule;not null"`
	IsActive         bool      `gorm:"column:is_active;not null"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns an id when the caller did not.
func (r *VendorShippingRule) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
