package orderitems

// Shape identifies which layout an order item arrived in.
type Shape int

const (
	// ShapeUnknown is anything that is not an object. Every field defaults.
	ShapeUnknown Shape = iota
	// ShapeFlat carries product fields directly on the item (legacy rows).
	ShapeFlat
	// ShapeNested carries them under a "product" object.
	ShapeNested
)

func (s Shape) String() string {
	switch s {
	case ShapeFlat:
		return "flat"
	case ShapeNested:
		return "nested"
	default:
		return "unknown"
	}
}

// Classify inspects a decoded JSON value.
func Classify(raw any) Shape {
	obj, ok := raw.(map[string]any)
	if !ok {
		return ShapeUnknown
	}
	if _, nested := obj["product"].(map[string]any); nested {
		return ShapeNested
	}
	return ShapeFlat
}
