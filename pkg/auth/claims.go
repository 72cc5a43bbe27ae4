package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/scentvault/storefront-backend/pkg/enums"
)

// StaffTokenPayload captures the data available when minting a staff JWT.
type StaffTokenPayload struct {
	StaffID string
	Role    enums.StaffRole
	JTI     string
}

// StaffClaims represents the typed JWT carried by back-office callers.
type StaffClaims struct {
	StaffID string          `json:"staff_id"`
	Role    enums.StaffRole `json:"role"`
	jwt.RegisteredClaims
}
