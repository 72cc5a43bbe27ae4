package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vendor is a supplier whose products are fulfilled and shipped separately.
type Vendor struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	RepFullName  string    `gorm:"column:rep_full_name;not null"`
	BusinessName *string   `gorm:"column:business_name"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

// BeforeCreate assigns an id when the caller did not.
func (v *Vendor) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
