package controllers

import (
	"net/http"

	"github.com/scentvault/storefront-backend/api/responses"
	"github.com/scentvault/storefront-backend/api/validators"
	"github.com/scentvault/storefront-backend/internal/shipping"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
)

type weightRateBandPayload struct {
	MinWeight float64 `json:"min_weight" validate:"gte=0"`
	MaxWeight float64 `json:"max_weight" validate:"gtfield=MinWeight"`
	Cost      float64 `json:"cost" validate:"gte=0"`
}

// ReplaceWeightRatesRequest replaces the whole band table.
type ReplaceWeightRatesRequest struct {
	Bands []weightRateBandPayload `json:"bands" validate:"dive"`
}

type vendorRulePayload struct {
	VendorID         string `json:"vendor_id" validate:"required,uuid"`
	MinQuantity      int    `json:"min_quantity" validate:"min=1"`
	ShippingSchedule string `json:"shipping_schedule" validate:"required"`
	IsActive         *bool  `json:"is_active"`
}

// ReplaceVendorRulesRequest replaces every vendor shipping rule.
type ReplaceVendorRulesRequest struct {
	Rules []vendorRulePayload `json:"rules" validate:"dive"`
}

func AdminListWeightRates(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}
		bands, err := svc.WeightRateBands(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"bands": bands})
	}
}

func AdminReplaceWeightRates(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		var payload ReplaceWeightRatesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		bands := make([]shipping.WeightRateBand, 0, len(payload.Bands))
		for _, b := range payload.Bands {
			bands = append(bands, shipping.WeightRateBand{MinWeight: b.MinWeight, MaxWeight: b.MaxWeight, Cost: b.Cost})
		}

		result, err := svc.ReplaceWeightRateBands(r.Context(), bands)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func AdminListVendorRules(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}
		rules, err := svc.VendorRules(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"rules": rules})
	}
}

func AdminReplaceVendorRules(svc shipping.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "shipping service unavailable"))
			return
		}

		var payload ReplaceVendorRulesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rules := make([]shipping.VendorShippingRule, 0, len(payload.Rules))
		for _, rule := range payload.Rules {
			active := true
			if rule.IsActive != nil {
				active = *rule.IsActive
			}
			rules = append(rules, shipping.VendorShippingRule{
				VendorID:         rule.VendorID,
				MinQuantity:      rule.MinQuantity,
				ShippingSchedule: rule.ShippingSchedule,
				IsActive:         active,
			})
		}

		stored, err := svc.ReplaceVendorRules(r.Context(), rules)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"rules": stored})
	}
}
