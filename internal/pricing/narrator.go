package pricing

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/scentvault/storefront-backend/pkg/money"
)

const unnamedProduct = "this scent"

var (
	forbiddenWordRe = regexp.MustCompile(`(?i)margin`)
	spaceRe         = regexp.MustCompile(`\s+`)
)

// DescribeDeal writes a one-sentence pitch for a combo. items are the combo's
// products; ids missing from items are called "this scent". The sentence
// never contains a percent sign or the word "margin", even when product
// names do.
func DescribeDeal(items []EnrichedProduct, combo Combo) string {
	names := comboNames(items, combo)
	total := money.FormatNaira(combo.TotalPrice)
	hasSavings := money.RoundHalfUp(combo.TotalSavings) > 0
	savings := money.FormatNaira(combo.TotalSavings)

	var sentence string
	switch len(names) {
	case 0:
		sentence = fmt.Sprintf("Just imagine a new signature scent for %s.", total)
	case 1:
		if hasSavings {
			sentence = fmt.Sprintf("Just imagine wearing %s for %s and keeping %s of the usual market price in your pocket.", names[0], total, savings)
		} else {
			sentence = fmt.Sprintf("Just imagine making %s your signature scent for %s.", names[0], total)
		}
	case 2:
		if hasSavings {
			sentence = fmt.Sprintf("Just imagine layering %s with %s for %s together, saving %s against buying them elsewhere.", names[0], names[1], total, savings)
		} else {
			sentence = fmt.Sprintf("Just imagine layering %s with %s for %s together.", names[0], names[1], total)
		}
	default:
		sentence = fmt.Sprintf("Filling your shelf with these %d scents comes to %s all in.", len(names), total)
	}
	return scrub(sentence)
}

func comboNames(items []EnrichedProduct, combo Combo) []string {
	byID := make(map[string]string, len(items))
	for _, item := range items {
		byID[item.ID] = item.Name
	}

	ids := combo.ProductIDs
	if len(ids) == 0 {
		for _, item := range items {
			ids = append(ids, item.ID)
		}
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		name := scrub(byID[id])
		if name == "" {
			name = unnamedProduct
		}
		names = append(names, name)
	}
	return names
}

func scrub(s string) string {
	s = strings.ReplaceAll(s, "%", "")
	for forbiddenWordRe.MatchString(s) {
		s = forbiddenWordRe.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
