package middleware

import (
	"context"

	"github.com/scentvault/storefront-backend/pkg/enums"
)

type ctxKey int

const (
	staffKey ctxKey = iota
	requestIDKey
)

type staffIdentity struct {
	id   string
	role enums.StaffRole
}

func staffFrom(ctx context.Context) staffIdentity {
	if ctx == nil {
		return staffIdentity{}
	}
	s, _ := ctx.Value(staffKey).(staffIdentity)
	return s
}

func StaffIDFromContext(ctx context.Context) string {
	return staffFrom(ctx).id
}

func RoleFromContext(ctx context.Context) enums.StaffRole {
	return staffFrom(ctx).role
}

// WithStaff records the authenticated staff member on ctx.
func WithStaff(ctx context.Context, staffID string, role enums.StaffRole) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, staffKey, staffIdentity{id: staffID, role: role})
}

// RequestIDFromContext returns the id assigned by RequestID, if any.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
