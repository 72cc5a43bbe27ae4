package shipping

import "sort"

// WeightBasedCost resolves the shipping cost for totalWeight against the bands.
//
// The first band in ascending MinWeight order with MinWeight <= w < MaxWeight
// wins. Weights at or past the highest band's MaxWeight pay the highest band's
// cost. Weights below the lowest band, weights in a gap between bands, and an
// empty band list all resolve to 0.
func WeightBasedCost(totalWeight float64, bands []WeightRateBand) float64 {
	if len(bands) == 0 {
		return 0
	}
	ordered := sortedBands(bands)
	for _, band := range ordered {
		if totalWeight >= band.MinWeight && totalWeight < band.MaxWeight {
			return band.Cost
		}
	}
	highest := ordered[len(ordered)-1]
	if totalWeight >= highest.MaxWeight {
		return highest.Cost
	}
	return 0
}

// BelowConfiguredBands reports whether totalWeight falls under every band, or
// no bands exist, which is when WeightBasedCost charges nothing.
func BelowConfiguredBands(totalWeight float64, bands []WeightRateBand) bool {
	if len(bands) == 0 {
		return true
	}
	return totalWeight < sortedBands(bands)[0].MinWeight
}

func sortedBands(bands []WeightRateBand) []WeightRateBand {
	ordered := make([]WeightRateBand, len(bands))
	copy(ordered, bands)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MinWeight < ordered[j].MinWeight
	})
	return ordered
}
