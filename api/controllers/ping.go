package controllers

import (
	"net/http"

	"github.com/scentvault/storefront-backend/api/middleware"
	"github.com/scentvault/storefront-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "admin", "status": "ok"}
		if staff := middleware.StaffIDFromContext(r.Context()); staff != "" {
			payload["staff_id"] = staff
			payload["role"] = string(middleware.RoleFromContext(r.Context()))
		}
		responses.WriteSuccess(w, payload)
	}
}
