package shipping

// VendorSchedule returns the schedule of the highest active rule whose
// MinQuantity the vendor's quantity still satisfies.
func VendorSchedule(vendorID string, quantity int, rules []VendorShippingRule) (string, bool) {
	var (
		best  *VendorShippingRule
		found bool
	)
	for i := range rules {
		rule := &rules[i]
		if !rule.IsActive || rule.VendorID != vendorID || rule.MinQuantity > quantity {
			continue
		}
		if !found || rule.MinQuantity > best.MinQuantity {
			best = rule
			found = true
		}
	}
	if !found {
		return "", false
	}
	return best.ShippingSchedule, true
}
