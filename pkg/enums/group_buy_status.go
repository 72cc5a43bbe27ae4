package enums

import "fmt"

// GroupBuyStatus tracks the lifecycle of a group-buy campaign.
type GroupBuyStatus string

const (
	GroupBuyStatusScheduled GroupBuyStatus = "scheduled"
	GroupBuyStatusActive    GroupBuyStatus = "active"
	GroupBuyStatusCompleted GroupBuyStatus = "completed"
	GroupBuyStatusCancelled GroupBuyStatus = "cancelled"
)

var validGroupBuyStatuses = []GroupBuyStatus{
	GroupBuyStatusScheduled,
	GroupBuyStatusActive,
	GroupBuyStatusCompleted,
	GroupBuyStatusCancelled,
}

// String implements fmt.Stringer.
func (s GroupBuyStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known GroupBuyStatus.
func (s GroupBuyStatus) IsValid() bool {
	for _, candidate := range validGroupBuyStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseGroupBuyStatus converts raw input into a GroupBuyStatus.
func ParseGroupBuyStatus(value string) (GroupBuyStatus, error) {
	for _, candidate := range validGroupBuyStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group buy status %q", value)
}
