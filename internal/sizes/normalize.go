package sizes

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MillilitersPerOunce converts US fluid ounces to milliliters.
const MillilitersPerOunce = 29.5735

// snapToleranceML is how far a converted ounce value may sit from a retail size
// and still be snapped onto it.
const snapToleranceML = 2.0

// CommonSizesML lists the retail bottle sizes ounce conversions snap to.
var CommonSizesML = []int{10, 15, 20, 30, 35, 40, 50, 60, 75, 80, 90, 100, 120, 125, 150, 200}

var (
	ounceRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:fl\.?\s*)?oz\.?$`)
	mlRe    = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*ml$`)
	bareRe  = regexp.MustCompile(`^\d+$`)
)

// NormalizeToken converts a free-text size such as "3.4oz" or "100 ML" into the
// canonical "<int>ml" form. Unrecognized tokens are returned trimmed.
func NormalizeToken(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if ml, ok := Milliliters(trimmed); ok {
		return fmt.Sprintf("%dml", ml)
	}
	return trimmed
}

// Milliliters reports the volume behind a size token.
func Milliliters(raw string) (int, bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if token == "" {
		return 0, false
	}

	if m := ounceRe.FindStringSubmatch(token); m != nil {
		oz, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return snapToCommonSize(oz * MillilitersPerOunce), true
	}

	if m := mlRe.FindStringSubmatch(token); m != nil {
		ml, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, false
		}
		return roundHalfUp(ml), true
	}

	if bareRe.MatchString(token) {
		ml, err := strconv.Atoi(token)
		if err != nil {
			return 0, false
		}
		return ml, true
	}

	return 0, false
}

// NormalizeList normalizes every token and drops empties and case-insensitive
// duplicates, keeping the first occurrence.
func NormalizeList(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, raw := range list {
		normalized := NormalizeToken(raw)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

func snapToCommonSize(ml float64) int {
	best := -1
	bestDiff := math.MaxFloat64
	for _, size := range CommonSizesML {
		diff := math.Abs(ml - float64(size))
		if diff <= snapToleranceML && diff < bestDiff {
			best = size
			bestDiff = diff
		}
	}
	if best > 0 {
		return best
	}
	return roundHalfUp(ml)
}

func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
