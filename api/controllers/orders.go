package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scentvault/storefront-backend/api/responses"
	"github.com/scentvault/storefront-backend/api/validators"
	"github.com/scentvault/storefront-backend/internal/orders"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
)

// NormalizeItemsRequest carries order lines in any stored shape.
type NormalizeItemsRequest struct {
	Items json.RawMessage `json:"items" validate:"required"`
}

// CreateOrderRequest is a checkout submission.
type CreateOrderRequest struct {
	Items        json.RawMessage `json:"items" validate:"required"`
	MultiAddress *bool           `json:"multi_address"`
}

func NormalizeOrderItems(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload NormalizeItemsRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Normalize(r.Context(), payload.Items)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"items": items})
	}
}

func CreateOrder(svc orders.Service, defaultMultiAddress bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		var payload CreateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.DraftInput{Items: payload.Items, MultiAddress: defaultMultiAddress}
		if payload.MultiAddress != nil {
			input.MultiAddress = *payload.MultiAddress
		}

		result, err := svc.CreateDraft(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		order, err := svc.Get(r.Context(), chi.URLParam(r, "orderId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
