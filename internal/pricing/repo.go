package pricing

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/pkg/db/models"
)

// ProductFilter narrows the active catalog. Empty fields match everything.
type ProductFilter struct {
	Brand  string
	Gender string
	Limit  int
}

// Repository loads catalog rows with their market prices and group buys.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListActiveProducts returns active products ordered by creation time.
func (r *Repository) ListActiveProducts(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("PriceIntelligence").
		Preload("GroupBuyCampaign").
		Where("is_active = ?", true)

	if brand := strings.TrimSpace(filter.Brand); brand != "" {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(brand))
	}
	if gender := strings.TrimSpace(filter.Gender); gender != "" {
		query = query.Where("LOWER(gender) = ?", strings.ToLower(gender))
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var products []models.Product
	if err := query.Order("created_at ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByID returns a single product regardless of its active flag.
func (r *Repository) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}
