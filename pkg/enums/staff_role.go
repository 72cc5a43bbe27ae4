package enums

import "fmt"

// StaffRole represents a back-office permissions role carried in admin tokens.
type StaffRole string

const (
	StaffRoleAdmin          StaffRole = "admin"
	StaffRoleCatalogManager StaffRole = "catalog_manager"
	StaffRoleSupport        StaffRole = "support"
)

var validStaffRoles = []StaffRole{
	StaffRoleAdmin,
	StaffRoleCatalogManager,
	StaffRoleSupport,
}

// String implements fmt.Stringer.
func (r StaffRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known StaffRole.
func (r StaffRole) IsValid() bool {
	for _, candidate := range validStaffRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseStaffRole converts raw input into a StaffRole.
func ParseStaffRole(value string) (StaffRole, error) {
	for _, candidate := range validStaffRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid staff role %q", value)
}
