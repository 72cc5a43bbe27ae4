package pricing

import (
	"math"
	"sort"
	"strings"
)

// BuildCombos ranks one single per product plus every unordered pair among the
// first maxPairSampleSize products, best score first. Equal scores keep
// generation order: singles in input order, then pairs (i, j) with i < j.
func BuildCombos(products []EnrichedProduct, maxPairSampleSize int) []Combo {
	w := DefaultComboWeights

	sample := maxPairSampleSize
	if sample < 0 {
		sample = 0
	}
	if sample > len(products) {
		sample = len(products)
	}

	combos := make([]Combo, 0, len(products)+sample*(sample-1)/2)
	for _, p := range products {
		margin := marginOrZero(p)
		combos = append(combos, Combo{
			Kind:                ComboSingle,
			ProductIDs:          []string{p.ID},
			TotalPrice:          p.BestPrice,
			TotalReferencePrice: p.ReferencePrice,
			TotalSavings:        p.SavingsAmount,
			TotalMargin:         margin,
			Score: w.SingleSavings*p.SavingsAmount +
				w.SingleMargin*margin +
				w.SingleStock*stockTerm(p.StockQuantity),
		})
	}

	for i := 0; i < sample; i++ {
		for j := i + 1; j < sample; j++ {
			a, b := products[i], products[j]
			savings := a.SavingsAmount + b.SavingsAmount
			margin := marginOrZero(a) + marginOrZero(b)
			affinity := Affinity(a, b)
			combos = append(combos, Combo{
				Kind:                ComboPair,
				ProductIDs:          []string{a.ID, b.ID},
				TotalPrice:          a.BestPrice + b.BestPrice,
				TotalReferencePrice: a.ReferencePrice + b.ReferencePrice,
				TotalSavings:        savings,
				TotalMargin:         margin,
				Affinity:            affinity,
				Score: w.PairSavings*savings +
					w.PairMargin*margin +
					w.PairAffinity*float64(affinity) +
					w.PairStock*stockTerm(a.StockQuantity+b.StockQuantity),
			})
		}
	}

	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].Score > combos[j].Score
	})
	return combos
}

// Affinity scores how well two products sit together, from 0 to 4. Blank
// attributes never match.
func Affinity(a, b EnrichedProduct) int {
	w := DefaultComboWeights
	score := 0
	if sameAttribute(a.ScentProfile, b.ScentProfile) {
		score += w.SameScent
	}
	if sameAttribute(a.Gender, b.Gender) {
		score += w.SameGender
	}
	if a.PriceTier == b.PriceTier {
		score += w.SameTier
	}
	return score
}

func sameAttribute(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}

func marginOrZero(p EnrichedProduct) float64 {
	if p.MarginAmount == nil {
		return 0
	}
	return *p.MarginAmount
}

func stockTerm(stock int) float64 {
	if stock < 1 {
		stock = 1
	}
	return math.Log10(float64(stock))
}
