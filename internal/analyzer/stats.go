package analyzer

import (
	"math"
	"sort"
)

// Median returns the middle value of the sample, or 0 for an empty sample.
func Median(numbers []float64) float64 {
	if len(numbers) == 0 {
		return 0
	}

	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2

	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// Percentile returns the linearly interpolated percentile of the sample.
func Percentile(numbers []float64, percentile float64) float64 {
	if len(numbers) == 0 {
		return 0
	}

	sorted := append([]float64(nil), numbers...)
	sort.Float64s(sorted)

	index := (percentile / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	weight := index - float64(lower)

	if lower == upper {
		return sorted[lower]
	}
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// removeOutliers drops comparables outside 1.5 IQR of the price distribution.
// Samples under 4 rows pass through untouched.
func removeOutliers(comps []comparable) []comparable {
	if len(comps) < 4 {
		return comps
	}

	prices := make([]float64, 0, len(comps))
	for _, c := range comps {
		prices = append(prices, c.adjustedPrice())
	}

	q1 := Percentile(prices, 25)
	q3 := Percentile(prices, 75)
	iqr := q3 - q1

	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	kept := make([]comparable, 0, len(comps))
	for _, c := range comps {
		p := c.adjustedPrice()
		if p >= lower && p <= upper {
			kept = append(kept, c)
		}
	}
	return kept
}

// sampleConfidence maps sample size to a base confidence, then penalizes
// widely scattered prices via the coefficient of variation.
func sampleConfidence(prices []float64) float64 {
	var confidence float64
	switch n := len(prices); {
	case n >= 20:
		confidence = 0.95
	case n >= 10:
		confidence = 0.85
	case n >= 5:
		confidence = 0.75
	case n >= 3:
		confidence = 0.60
	default:
		confidence = 0.40
	}

	if len(prices) >= 3 {
		cv := coefficientOfVariation(prices)
		if cv > 0.3 {
			confidence *= 0.9
		}
		if cv > 0.5 {
			confidence *= 0.8
		}
	}

	return math.Min(confidence, 1.0)
}

func coefficientOfVariation(prices []float64) float64 {
	if len(prices) < 2 {
		return 0
	}

	var sum float64
	for _, p := range prices {
		sum += p
	}
	mean := sum / float64(len(prices))
	if mean == 0 {
		return 0
	}

	var variance float64
	for _, p := range prices {
		diff := p - mean
		variance += diff * diff
	}
	variance /= float64(len(prices))

	return math.Sqrt(variance) / mean
}
