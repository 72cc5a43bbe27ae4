package orderitems

import (
	"bytes"
	"encoding/json"
	"math"
)

const defaultName = "Product"

// NormalizedOrderItem is the canonical order line shared by checkout and order
// history, whatever shape the line was stored in.
type NormalizedOrderItem struct {
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	ImageURL   *string `json:"image_url"`
	VendorID   *string `json:"vendor_id"`
	VendorName *string `json:"vendor_name"`
}

// Normalize never fails. Missing or malformed fields take their defaults.
func Normalize(raw any) NormalizedOrderItem {
	var (
		top     map[string]any
		product map[string]any
		vendor  map[string]any
	)
	switch Classify(raw) {
	case ShapeNested:
		top = raw.(map[string]any)
		product = top["product"].(map[string]any)
		vendor, _ = product["vendor"].(map[string]any)
	case ShapeFlat:
		top = raw.(map[string]any)
	}

	item := NormalizedOrderItem{
		Name:      firstText(defaultName, field{top, "name"}, field{top, "product_name"}, field{product, "name"}),
		ProductID: firstText("", field{top, "product_id"}, field{product, "id"}),
		ImageURL:  firstTextPtr(field{top, "image_url"}, field{product, "image_url"}),
		VendorID:  firstTextPtr(field{top, "vendor_id"}, field{product, "vendor_id"}),
		VendorName: firstTextPtr(
			field{top, "vendor_name"},
			field{vendor, "rep_full_name"},
		),
	}

	price := toNumber(first(field{top, "price"}, field{product, "price"}))
	if finite(price) {
		item.Price = price
	}

	item.Quantity = 1
	qty := toNumber(first(field{top, "quantity"}))
	if finite(qty) {
		if floored := math.Floor(qty); floored >= 1 {
			if floored > math.MaxInt32 {
				floored = math.MaxInt32
			}
			item.Quantity = int(floored)
		}
	}
	return item
}

// NormalizeAll normalizes every element of a decoded JSON array. Anything that
// is not an array yields an empty list.
func NormalizeAll(raw any) []NormalizedOrderItem {
	switch list := raw.(type) {
	case []any:
		out := make([]NormalizedOrderItem, 0, len(list))
		for _, entry := range list {
			out = append(out, Normalize(entry))
		}
		return out
	case []map[string]any:
		out := make([]NormalizedOrderItem, 0, len(list))
		for _, entry := range list {
			out = append(out, Normalize(entry))
		}
		return out
	default:
		return []NormalizedOrderItem{}
	}
}

// DecodeAll parses a JSON document and normalizes it. Only malformed JSON is an
// error; valid non-array documents yield an empty list.
func DecodeAll(data []byte) ([]NormalizedOrderItem, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []NormalizedOrderItem{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return NormalizeAll(raw), nil
}

type field struct {
	obj map[string]any
	key string
}

// lookup treats an explicit null the same as an absent key.
func (f field) lookup() (any, bool) {
	if f.obj == nil {
		return nil, false
	}
	v, ok := f.obj[f.key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// first returns the first non-null candidate. When every candidate is absent
// the last explicit null, if any, is reported as present.
func first(fields ...field) (any, bool) {
	sawNull := false
	for _, f := range fields {
		if v, ok := f.lookup(); ok {
			return v, true
		}
		if f.obj != nil {
			if _, exists := f.obj[f.key]; exists {
				sawNull = true
			}
		}
	}
	return nil, sawNull
}

func firstText(fallback string, fields ...field) string {
	for _, f := range fields {
		v, ok := f.lookup()
		if !ok {
			continue
		}
		if s, ok := toText(v); ok {
			return s
		}
	}
	return fallback
}

func firstTextPtr(fields ...field) *string {
	for _, f := range fields {
		v, ok := f.lookup()
		if !ok {
			continue
		}
		if s, ok := toText(v); ok {
			return &s
		}
	}
	return nil
}
