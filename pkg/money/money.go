// Package money formats storefront amounts. The storefront prices in Naira
// only, so there is no currency parameter.
package money

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NairaSymbol prefixes every formatted amount.
const NairaSymbol = "₦"

var printer = message.NewPrinter(language.English)

// FormatNaira rounds to whole Naira (halves up) and groups thousands:
// 1234567.5 renders as "₦1,234,568".
func FormatNaira(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	whole := int64(RoundHalfUp(amount))
	if whole < 0 {
		return "-" + NairaSymbol + printer.Sprintf("%d", -whole)
	}
	return NairaSymbol + printer.Sprintf("%d", whole)
}

// RoundHalfUp rounds to the nearest integer with halves going up, so -2.5
// becomes -2.
func RoundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}
