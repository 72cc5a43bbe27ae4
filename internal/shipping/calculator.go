package shipping

import (
	"fmt"
	"strings"
)

// StandardShipping is the consolidated schedule when no vendor rule applies.
const StandardShipping = "Standard shipping"

const scheduleSeparator = " | "

// Input is a cart to quote.
type Input struct {
	Items        []CartItem `json:"items"`
	MultiAddress bool       `json:"multi_address"`
}

// Calculate prices a cart against a configuration snapshot.
func Calculate(input Input, snap Snapshot) Quote {
	totalWeight := TotalWeight(input.Items, input.MultiAddress)
	quote := Quote{
		TotalWeight:          totalWeight,
		Cost:                 WeightBasedCost(totalWeight, snap.Bands),
		Vendors:              []VendorQuote{},
		ConsolidatedSchedule: StandardShipping,
	}

	order, quantities := vendorQuantities(input.Items)
	parts := make([]string, 0, len(order))
	for _, vendorID := range order {
		schedule, ok := VendorSchedule(vendorID, quantities[vendorID], snap.Rules)
		if !ok {
			continue
		}
		name := vendorID
		if known := strings.TrimSpace(snap.VendorNames[vendorID]); known != "" {
			name = known
		}
		quote.Vendors = append(quote.Vendors, VendorQuote{
			VendorID:   vendorID,
			VendorName: name,
			Quantity:   quantities[vendorID],
			Schedule:   schedule,
		})
		parts = append(parts, fmt.Sprintf("%s: %s", name, schedule))
	}
	if len(parts) > 0 {
		quote.ConsolidatedSchedule = strings.Join(parts, scheduleSeparator)
	}
	return quote
}

// vendorQuantities aggregates quantities per vendor in first-seen order.
// Lines without a vendor are skipped.
func vendorQuantities(items []CartItem) ([]string, map[string]int) {
	order := []string{}
	quantities := map[string]int{}
	for _, item := range items {
		if item.Product == nil || item.Product.VendorID == nil || item.Quantity <= 0 {
			continue
		}
		vendorID := strings.TrimSpace(*item.Product.VendorID)
		if vendorID == "" {
			continue
		}
		if _, seen := quantities[vendorID]; !seen {
			order = append(order, vendorID)
		}
		quantities[vendorID] += item.Quantity
	}
	return order, quantities
}
