package shipping

// CartProduct is the catalog data a cart line carries for weight estimation.
type CartProduct struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Weight   *float64 `json:"weight,omitempty"`
	Size     *string  `json:"size,omitempty"`
	VendorID *string  `json:"vendor_id,omitempty"`
}

// CartItem is one line of a cart being quoted.
type CartItem struct {
	ProductID string       `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Product   *CartProduct `json:"product,omitempty"`
}

// WeightRateBand prices totals in [MinWeight, MaxWeight) kilograms.
type WeightRateBand struct {
	MinWeight float64 `json:"min_weight"`
	MaxWeight float64 `json:"max_weight"`
	Cost      float64 `json:"cost"`
}

// VendorShippingRule is one step of a vendor's quantity-to-schedule function.
type VendorShippingRule struct {
	VendorID         string `json:"vendor_id"`
	MinQuantity      int    `json:"min_quantity"`
	ShippingSchedule string `json:"shipping_schedule"`
	IsActive         bool   `json:"is_active"`
}

// Snapshot is the immutable configuration a quote is resolved against.
type Snapshot struct {
	Bands       []WeightRateBand     `json:"bands"`
	Rules       []VendorShippingRule `json:"rules"`
	VendorNames map[string]string    `json:"vendor_names"`
}

// VendorQuote is the schedule resolved for one vendor in the cart.
type VendorQuote struct {
	VendorID   string `json:"vendor_id"`
	VendorName string `json:"vendor_name"`
	Quantity   int    `json:"quantity"`
	Schedule   string `json:"schedule"`
}

// Quote is the outcome of pricing shipping for a cart.
type Quote struct {
	TotalWeight          float64       `json:"total_weight_kg"`
	Cost                 float64       `json:"cost"`
	Vendors              []VendorQuote `json:"vendors"`
	ConsolidatedSchedule string        `json:"consolidated_schedule"`
}
