package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/scentvault/storefront-backend/internal/shipping"
	"github.com/scentvault/storefront-backend/pkg/db/models"
)

// Repository defines persistence operations for draft orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	FindOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// ShippingQuoter prices the cart behind a draft order.
type ShippingQuoter interface {
	Quote(ctx context.Context, input shipping.Input) (*shipping.Quote, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
