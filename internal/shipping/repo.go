package shipping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/pkg/db/models"
)

// Repository reads and replaces the shipping configuration tables.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ListWeightRateBands returns every band ordered by min_weight.
func (r *Repository) ListWeightRateBands(ctx context.Context) ([]models.WeightRateBand, error) {
	var bands []models.WeightRateBand
	if err := r.db.WithContext(ctx).
		Order("min_weight ASC").
		Order("created_at ASC").
		Find(&bands).Error; err != nil {
		return nil, err
	}
	return bands, nil
}

// ListVendorShippingRules returns the vendor rules, optionally only active ones.
func (r *Repository) ListVendorShippingRules(ctx context.Context, activeOnly bool) ([]models.VendorShippingRule, error) {
	query := r.db.WithContext(ctx).Order("vendor_id ASC").Order("min_quantity ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var rules []models.VendorShippingRule
	if err := query.Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// VendorNames maps vendor ids to the representative's full name.
func (r *Repository) VendorNames(ctx context.Context, ids []uuid.UUID) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var vendors []models.Vendor
	if err := r.db.WithContext(ctx).
		Select("id", "rep_full_name").
		Where("id IN ?", ids).
		Find(&vendors).Error; err != nil {
		return nil, err
	}
	for _, v := range vendors {
		names[v.ID.String()] = v.RepFullName
	}
	return names, nil
}

// ProductsForCart loads the catalog rows needed to weigh cart lines.
func (r *Repository) ProductsForCart(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []models.Product
	if err := r.db.WithContext(ctx).
		Select("id", "name", "vendor_id", "size", "weight").
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceWeightRateBands swaps the whole band table. Call inside a transaction.
func (r *Repository) ReplaceWeightRateBands(ctx context.Context, bands []models.WeightRateBand) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("1 = 1").Delete(&models.WeightRateBand{}).Error; err != nil {
		return err
	}
	if len(bands) == 0 {
		return nil
	}
	return tx.Create(&bands).Error
}

// ReplaceVendorShippingRules swaps the whole rule table. Call inside a transaction.
func (r *Repository) ReplaceVendorShippingRules(ctx context.Context, rules []models.VendorShippingRule) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("1 = 1").Delete(&models.VendorShippingRule{}).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}
	return tx.Create(&rules).Error
}
