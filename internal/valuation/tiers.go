package valuation

import (
	"context"
	"strings"

	"github.com/g1nlyf/bikewerk/internal/analyzer"
	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/history"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// Estimator is one FMV strategy. A (nil, nil) return means "no opinion" and
// the engine moves to the next tier.
type Estimator interface {
	Name() string
	Estimate(ctx context.Context, listing model.ListingCandidate) (*FMVEstimate, error)
}

// analyzerTier asks the statistical market analyzer first.
type analyzerTier struct {
	analyzer analyzer.Analyzer
	cutoffs  config.ConfidenceCutoffs
}

func (t *analyzerTier) Name() string { return "analyzer" }

func (t *analyzerTier) Estimate(ctx context.Context, listing model.ListingCandidate) (*FMVEstimate, error) {
	res, err := t.analyzer.FairMarketValue(ctx, listing.Brand, listing.Model, listing.Year, analyzer.Options{
		FrameSize:     listing.FrameSize,
		FrameMaterial: listing.FrameMaterial,
		ListingPrice:  listing.Price,
	})
	if err != nil {
		return nil, err
	}
	if res == nil || res.FMV <= 0 {
		return nil, nil
	}

	return &FMVEstimate{
		FMV:             res.FMV,
		Confidence:      t.label(res.Confidence, res.SampleSize),
		ConfidenceScore: res.Confidence,
		SampleSize:      res.SampleSize,
		Min:             res.PriceRange.Min,
		Max:             res.PriceRange.Max,
		Method:          res.DataSource,
	}, nil
}

// label maps the analyzer's numeric score and sample size to a coarse label.
// Score and sample size combine with OR, matching observed upstream behavior.
func (t *analyzerTier) label(score float64, sampleSize int) Confidence {
	switch {
	case score >= t.cutoffs.HighScore || sampleSize >= t.cutoffs.HighSamples:
		return ConfidenceHigh
	case score >= t.cutoffs.MediumScore || sampleSize >= t.cutoffs.MediumSamples:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// exactTier averages sales of the same model within a one-year window.
type exactTier struct {
	store history.Store
	cfg   config.ValuationConfig
}

func (t *exactTier) Name() string { return "exact" }

func (t *exactTier) Estimate(ctx context.Context, listing model.ListingCandidate) (*FMVEstimate, error) {
	yearMin, yearMax := 0, 9999
	if listing.Year > 0 {
		yearMin, yearMax = listing.Year-1, listing.Year+1
	}

	stats, err := t.store.ExactModelStats(ctx, listing.Model, yearMin, yearMax, t.cfg.MinComparableEUR)
	if err != nil {
		return nil, err
	}
	if stats.Count < t.cfg.ExactMinSamples {
		return nil, nil
	}

	return &FMVEstimate{
		FMV:        stats.Average,
		Confidence: ConfidenceHigh,
		SampleSize: stats.Count,
		Method:     MethodExact,
	}, nil
}

// similarTier averages brand sales matching the model's first two words,
// discounted for the looser match.
type similarTier struct {
	store history.Store
	cfg   config.ValuationConfig
}

func (t *similarTier) Name() string { return "similar" }

func (t *similarTier) Estimate(ctx context.Context, listing model.ListingCandidate) (*FMVEstimate, error) {
	keywords := modelKeywords(listing.Model)
	if listing.Brand == "" || keywords == "" {
		return nil, nil
	}

	stats, err := t.store.SimilarModelStats(ctx, listing.Brand, keywords, t.cfg.MinComparableEUR)
	if err != nil {
		return nil, err
	}
	if stats.Count < t.cfg.SimilarMinSamples {
		return nil, nil
	}

	return &FMVEstimate{
		FMV:        stats.Average * t.cfg.SimilarDiscount,
		Confidence: ConfidenceMedium,
		SampleSize: stats.Count,
		Method:     MethodSimilar,
	}, nil
}

// categoryTier falls back to the category average within a sane price window,
// scaled by the brand premium.
type categoryTier struct {
	store history.Store
	cfg   config.ValuationConfig
}

func (t *categoryTier) Name() string { return "category" }

func (t *categoryTier) Estimate(ctx context.Context, listing model.ListingCandidate) (*FMVEstimate, error) {
	if listing.Category == "" {
		return nil, nil
	}

	stats, err := t.store.CategoryStats(ctx, listing.Category, listing.FrameMaterial,
		t.cfg.CategoryMinEUR, t.cfg.CategoryMaxEUR)
	if err != nil {
		return nil, err
	}
	if stats.Count == 0 || stats.Average <= 0 {
		return nil, nil
	}

	multiplier, ok := t.cfg.BrandMultipliers[listing.Brand]
	if !ok {
		multiplier = 1.0
	}

	return &FMVEstimate{
		FMV:        stats.Average * multiplier * t.cfg.CategoryDiscount,
		Confidence: ConfidenceLow,
		SampleSize: stats.Count,
		Method:     MethodCategory,
	}, nil
}

// modelKeywords returns the first two words of a model name.
func modelKeywords(modelName string) string {
	fields := strings.Fields(modelName)
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return strings.Join(fields, " ")
}
