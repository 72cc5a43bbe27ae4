package middleware

import (
	"net/http"
	"strings"

	"github.com/scentvault/storefront-backend/api/responses"
	pkgAuth "github.com/scentvault/storefront-backend/pkg/auth"
	"github.com/scentvault/storefront-backend/pkg/config"
	pkgerrors "github.com/scentvault/storefront-backend/pkg/errors"
	"github.com/scentvault/storefront-backend/pkg/logger"
)

var errMissingCredentials = pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")

// bearerToken accepts "Bearer <jwt>" in any case, or a bare token.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	scheme, rest, found := strings.Cut(header, " ")
	if found && strings.EqualFold(scheme, "bearer") {
		return strings.TrimSpace(rest)
	}
	if found {
		return ""
	}
	return header
}

// Auth admits requests carrying a valid staff token and records the caller on
// the request context and its logger.
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				responses.WriteError(r.Context(), logg, w, errMissingCredentials)
				return
			}

			claims, err := pkgAuth.ParseStaffToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithStaff(r.Context(), claims.StaffID, claims.Role)
			if logg != nil {
				ctx = logg.WithFields(logg.WithStaffID(ctx, claims.StaffID), map[string]any{"staff_role": string(claims.Role)})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
