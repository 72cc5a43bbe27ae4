package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/scentvault/storefront-backend/pkg/config"
)

// clockSkew is tolerated on exp/iat so tokens minted by another instance are
// not rejected over a few seconds of drift.
const clockSkew = 30 * time.Second

var (
	signingMethod = jwt.SigningMethodHS256

	errNoSecret  = errors.New("jwt secret is required")
	errNoIssuer  = errors.New("jwt issuer is required")
	errNoTTL     = errors.New("jwt expiration minutes must be positive")
	errNoStaffID = errors.New("staff id is required")
)

func checkSigner(cfg config.JWTConfig) error {
	switch {
	case cfg.Secret == "":
		return errNoSecret
	case cfg.Issuer == "":
		return errNoIssuer
	case cfg.ExpirationMinutes <= 0:
		return errNoTTL
	}
	return nil
}

// MintStaffToken signs an admin token for the back-office surface.
func MintStaffToken(cfg config.JWTConfig, now time.Time, payload StaffTokenPayload) (string, error) {
	if err := checkSigner(cfg); err != nil {
		return "", err
	}
	staffID := strings.TrimSpace(payload.StaffID)
	if staffID == "" {
		return "", errNoStaffID
	}
	if !payload.Role.IsValid() {
		return "", fmt.Errorf("unknown staff role %q", payload.Role)
	}

	id := strings.TrimSpace(payload.JTI)
	if id == "" {
		id = uuid.NewString()
	}

	signed, err := jwt.NewWithClaims(signingMethod, StaffClaims{
		StaffID: staffID,
		Role:    payload.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			Issuer:    cfg.Issuer,
			Subject:   staffID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.Expiration())),
		},
	}).SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign staff token: %w", err)
	}
	return signed, nil
}

// ParseStaffToken verifies signature, issuer and expiry, then checks that the
// staff claims are usable for authorization.
func ParseStaffToken(cfg config.JWTConfig, raw string) (*StaffClaims, error) {
	if cfg.Secret == "" {
		return nil, errNoSecret
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(clockSkew),
	)

	claims := new(StaffClaims)
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(cfg.Secret), nil
	}); err != nil {
		return nil, err
	}

	if claims.StaffID == "" {
		return nil, errNoStaffID
	}
	if claims.Subject != "" && claims.Subject != claims.StaffID {
		return nil, fmt.Errorf("subject %q does not match staff id", claims.Subject)
	}
	if !claims.Role.IsValid() {
		return nil, fmt.Errorf("unknown staff role %q", claims.Role)
	}
	return claims, nil
}
