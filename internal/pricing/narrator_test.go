package pricing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertNarrationContract(t *testing.T, sentence string) {
	t.Helper()
	assert.NotContains(t, sentence, "%")
	assert.NotContains(t, strings.ToLower(sentence), "margin")
}

func TestDescribeDealPairWithSavings(t *testing.T) {
	t.Parallel()

	items := []EnrichedProduct{
		{ID: "a", Name: "Oud Royale"},
		{ID: "b", Name: "Rose Petals"},
	}
	combo := Combo{Kind: ComboPair, ProductIDs: []string{"a", "b"}, TotalPrice: 52500, TotalSavings: 7250, TotalMargin: 9000}

	got := DescribeDeal(items, combo)

	assert.Contains(t, got, "imagine")
	assert.Contains(t, got, "Oud Royale")
	assert.Contains(t, got, "Rose Petals")
	assert.Contains(t, got, "₦52,500")
	assert.Contains(t, got, "₦7,250")
	assertNarrationContract(t, got)
}

func TestDescribeDealPairWithoutSavings(t *testing.T) {
	t.Parallel()

	items := []EnrichedProduct{{ID: "a", Name: "Oud Royale"}, {ID: "b", Name: "Rose Petals"}}
	got := DescribeDeal(items, Combo{ProductIDs: []string{"a", "b"}, TotalPrice: 40000})

	assert.Contains(t, got, "imagine")
	assert.Contains(t, got, "₦40,000")
	assert.NotContains(t, got, "saving")
	assertNarrationContract(t, got)
}

func TestDescribeDealSingle(t *testing.T) {
	t.Parallel()

	items := []EnrichedProduct{{ID: "a", Name: "Citrus Bloom"}}

	withSavings := DescribeDeal(items, Combo{ProductIDs: []string{"a"}, TotalPrice: 14999.6, TotalSavings: 1000})
	assert.Contains(t, withSavings, "₦15,000")
	assert.Contains(t, withSavings, "₦1,000")
	assertNarrationContract(t, withSavings)

	plain := DescribeDeal(items, Combo{ProductIDs: []string{"a"}, TotalPrice: 9000, TotalSavings: 0.2})
	assert.Contains(t, plain, "imagine")
	assert.Contains(t, plain, "₦9,000")
	assert.NotContains(t, plain, "pocket")
	assertNarrationContract(t, plain)
}

func TestDescribeDealSubUnitSavingsRoundsAway(t *testing.T) {
	t.Parallel()

	items := []EnrichedProduct{{ID: "a", Name: "Oud Noir"}, {ID: "b", Name: "Vetiver Rain"}}

	single := DescribeDeal(items[:1], Combo{ProductIDs: []string{"a"}, TotalPrice: 12000, TotalSavings: 0.4})
	assert.Equal(t, "Just imagine making Oud Noir your signature scent for ₦12,000.", single)

	pair := DescribeDeal(items, Combo{ProductIDs: []string{"a", "b"}, TotalPrice: 30000, TotalSavings: 0.4})
	assert.Equal(t, "Just imagine layering Oud Noir with Vetiver Rain for ₦30,000 together.", pair)

	half := DescribeDeal(items[:1], Combo{ProductIDs: []string{"a"}, TotalPrice: 12000, TotalSavings: 0.5})
	assert.Contains(t, half, "keeping ₦1 of the usual market price")
}

func TestDescribeDealManyItems(t *testing.T) {
	t.Parallel()

	items := []EnrichedProduct{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}, {ID: "c", Name: "C"}}
	got := DescribeDeal(items, Combo{TotalPrice: 1234567, TotalSavings: 5000})

	assert.Contains(t, got, "shelf")
	assert.Contains(t, got, "₦1,234,567")
	assert.NotContains(t, got, "₦5,000")
	assertNarrationContract(t, got)
}

func TestDescribeDealScrubsHostileNames(t *testing.T) {
	t.Parallel()

	items := []EnrichedProduct{
		{ID: "a", Name: "100% MARGIN Musk"},
		{ID: "b", Name: "marmargingin"},
	}
	got := DescribeDeal(items, Combo{ProductIDs: []string{"a", "b", "missing"}, TotalPrice: 1000})
	assertNarrationContract(t, got)

	single := DescribeDeal(nil, Combo{ProductIDs: []string{"ghost"}, TotalPrice: 500})
	assert.Contains(t, single, "this scent")
	assertNarrationContract(t, single)
}
