package orders

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/scentvault/storefront-backend/internal/orderitems"
	"github.com/scentvault/storefront-backend/internal/shipping"
	"github.com/scentvault/storefront-backend/pkg/db/models"
	"github.com/scentvault/storefront-backend/pkg/enums"
)

// DraftInput is a checkout submission. Items may be flat or nested lines.
type DraftInput struct {
	Items        json.RawMessage `json:"items"`
	MultiAddress bool            `json:"multi_address"`
}

// OrderView is the API representation of a stored order.
type OrderView struct {
	ID               uuid.UUID                        `json:"id"`
	Status           enums.OrderStatus                `json:"status"`
	MultiAddress     bool                             `json:"multi_address"`
	Subtotal         float64                          `json:"subtotal"`
	ShippingCost     float64                          `json:"shipping_cost"`
	Total            float64                          `json:"total"`
	TotalWeightKG    float64                          `json:"total_weight_kg"`
	ShippingSchedule string                           `json:"shipping_schedule"`
	Items            []orderitems.NormalizedOrderItem `json:"items"`
	CreatedAt        time.Time                        `json:"created_at"`
}

// DraftResult pairs the stored order with the quote it was priced from.
type DraftResult struct {
	Order *OrderView      `json:"order"`
	Quote *shipping.Quote `json:"shipping_quote"`
}

func viewFromModel(m *models.Order) *OrderView {
	view := &OrderView{
		ID:               m.ID,
		Status:           m.Status,
		MultiAddress:     m.MultiAddress,
		Subtotal:         m.Subtotal.InexactFloat64(),
		ShippingCost:     m.ShippingCost.InexactFloat64(),
		Total:            m.Total.InexactFloat64(),
		TotalWeightKG:    m.TotalWeightKG.InexactFloat64(),
		ShippingSchedule: m.ShippingSchedule,
		Items:            make([]orderitems.NormalizedOrderItem, 0, len(m.Items)),
		CreatedAt:        m.CreatedAt,
	}
	for _, item := range m.Items {
		view.Items = append(view.Items, orderitems.NormalizedOrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			Price:      item.Price.InexactFloat64(),
			ImageURL:   item.ImageURL,
			VendorID:   item.VendorID,
			VendorName: item.VendorName,
		})
	}
	return view
}
