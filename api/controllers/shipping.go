package controllers

import (
	"net/http"

	"github.com/scentvault/storefront-backend/api/responses"
	"github.com/scentvault/storefront-backend/api/validators"
	"github.com/scentvault/storefront-backend/internal/shipping"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
)

type quoteProduct struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Weight   *float64 `json:"weight" validate:"omitempty,gte=0"`
	Size     *string  `json:"size"`
	VendorID *string  `json:"vendor_id"`
}

type quoteItem struct {
	ProductID string        `json:"product_id"`
	Quantity  int           `json:"quantity" validate:"min=1"`
	Product   *quoteProduct `json:"product"`
}

// ShippingQuoteRequest is the cart a shopper wants shipping priced for.
type ShippingQuoteRequest struct {
	Items        []quoteItem `json:"items" validate:"required,min=1,dive"`
	MultiAddress *bool       `json:"multi_address"`
}

func (req ShippingQuoteRequest) toInput(defaultMultiAddress bool) shipping.Input {
	input := shipping.Input{
		Items:        make([]shipping.CartItem, 0, len(req.Items)),
		MultiAddress: defaultMultiAddress,
	}
	if req.MultiAddress != nil {
		input.MultiAddress = *req.MultiAddress
	}
	for _, item := range req.Items {
		line := shipping.CartItem{ProductID: item.ProductID, Quantity: item.Quantity}
		if p := item.Product; p != nil {
			line.Product = &shipping.CartProduct{
				ID:       p.ID,
				Name:     p.Name,
				Weight:   p.Weight,
				Size:     p.Size,
				VendorID: p.VendorID,
			}
		}
		input.Items = append(input.Items, line)
	}
	return input
}

// ShippingQuote prices a cart's shipping.
func ShippingQuote(svc shipping.Service, defaultMultiAddress bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		var payload ShippingQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.Quote(r.Context(), payload.toInput(defaultMultiAddress))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}
