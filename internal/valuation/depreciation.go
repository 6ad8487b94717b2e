package valuation

import (
	"context"
	"fmt"
	"math"

	"github.com/g1nlyf/bikewerk/internal/history"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// CalculateFMVWithDepreciation values a brand/model/year with no listing
// context, assuming grade B. When the standard chain has no opinion it
// extrapolates from the nearest year bucket with enough sales: compounding
// appreciation toward a newer target year, depreciation toward an older one.
// The forward appreciation mirrors observed pricing of newer generations and
// is intentional.
func (e *Engine) CalculateFMVWithDepreciation(ctx context.Context, brand, modelName string, year int) (*ValuationResult, error) {
	listing := model.ListingCandidate{
		Brand:          brand,
		Model:          modelName,
		Year:           year,
		ConditionGrade: model.GradeB,
	}

	result, err := e.CalculateFMV(ctx, listing)
	if err != nil {
		return nil, err
	}
	if result != nil {
		if result.Method == "" {
			result.Method = MethodAnalyzer
		}
		return result, nil
	}

	if year == 0 {
		return nil, nil
	}

	dep := e.cfg.Depreciation
	buckets, err := e.store.YearBuckets(ctx, brand, modelName, e.cfg.MinComparableEUR, dep.BucketMinSamples)
	if err != nil {
		return nil, fmt.Errorf("year buckets: %w", err)
	}

	closest, found := nearestBucket(buckets, year, dep.MaxYearDistance)
	if !found {
		e.log.Info("no year bucket within range", "brand", brand, "model", modelName, "year", year)
		return nil, nil
	}

	yearDiff := year - closest.Year
	adjusted := closest.AvgPrice
	if yearDiff > 0 {
		adjusted = closest.AvgPrice * math.Pow(dep.AppreciationRate, float64(yearDiff))
	} else if yearDiff < 0 {
		adjusted = closest.AvgPrice * math.Pow(dep.DepreciationRate, float64(-yearDiff))
	}

	fmv := math.Round(adjusted)
	e.log.Info("depreciation extrapolation",
		"base_year", closest.Year, "base_avg", math.Round(closest.AvgPrice),
		"target_year", year, "fmv", fmv)

	est := &FMVEstimate{
		FMV:        fmv,
		Confidence: ConfidenceMedium,
		SampleSize: closest.Count,
		Method:     MethodDepreciation,
	}
	result = e.adjuster.ApplyConditionPenalty(est.FMV, model.GradeB, est)
	result.BaseYear = closest.Year
	return result, nil
}

// nearestBucket picks the bucket with minimal distance to the target year,
// rejecting anything farther than maxDistance.
func nearestBucket(buckets []history.YearBucket, targetYear, maxDistance int) (history.YearBucket, bool) {
	var closest history.YearBucket
	minDiff := maxDistance + 1

	for _, b := range buckets {
		diff := b.Year - targetYear
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff = diff
			closest = b
		}
	}

	return closest, minDiff <= maxDistance
}
