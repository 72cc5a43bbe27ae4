package types

import (
	"database/sql/driver"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SizeList is a product's size variants, stored as text[] in Postgres. Other
// dialects keep the array literal in a text column.
type SizeList []string

// Value renders the Postgres array literal.
func (s SizeList) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return pq.StringArray(s).Value()
}

// Scan parses a Postgres array literal.
func (s *SizeList) Scan(value interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(value); err != nil {
		return err
	}
	*s = SizeList(arr)
	return nil
}

// GormDataType is the generic column type used during schema parsing.
func (SizeList) GormDataType() string {
	return "text[]"
}

// GormDBDataType picks the column type per dialect for automigrations.
func (SizeList) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
