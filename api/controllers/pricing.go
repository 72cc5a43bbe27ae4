package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scentvault/storefront-backend/api/responses"
	"github.com/scentvault/storefront-backend/api/validators"
	"github.com/scentvault/storefront-backend/internal/pricing"
	"github.com/scentvault/storefront-backend/pkg/config"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
)

const maxFilterLen = 64

func EnrichedProducts(svc pricing.Service, cfg config.PricingConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", cfg.CatalogLimit, 1, cfg.CatalogLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter := pricing.ProductFilter{
			Brand:  validators.QueryText(r, "brand", maxFilterLen),
			Gender: validators.QueryText(r, "gender", maxFilterLen),
			Limit:  limit,
		}

		products, err := svc.EnrichedCatalog(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

func ProductSizes(svc pricing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}
		sizes, err := svc.ProductSizes(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, sizes)
	}
}

func DealCombos(svc pricing.Service, cfg config.PricingConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		sample, err := validators.ParseQueryInt(r, "sample", cfg.DefaultPairSample, 1, cfg.MaxPairSample)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, 1000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		combos, err := svc.Combos(r.Context(), pricing.ComboQuery{Sample: sample, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"combos": combos})
	}
}

func TopDeals(svc pricing.Service, cfg config.PricingConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", cfg.DealsPageSize, 1, cfg.DealsPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deals, err := svc.TopDeals(r.Context(), limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"deals": deals})
	}
}
