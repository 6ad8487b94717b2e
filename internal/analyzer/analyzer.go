// Package analyzer estimates a fair market value for a bike from recent
// comparable sales: fuzzy model matching, IQR outlier rejection, median
// pricing, and a variance-aware confidence score. When the sale history is
// empty it falls back to a brand-tier estimation curve.
package analyzer

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/history"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// Range bounds the comparable price distribution.
type Range struct {
	Min float64
	Max float64
	Q1  float64
	Q3  float64
}

// Result is the analyzer's market opinion.
type Result struct {
	FMV         float64
	Confidence  float64
	SampleSize  int
	PriceRange  Range
	DataSource  string
	LastUpdated time.Time
}

// Options narrow the comparable set.
type Options struct {
	FrameSize     string
	FrameMaterial string
	ListingPrice  float64
}

// Analyzer is the statistical matcher contract consumed by the valuation
// engine.
type Analyzer interface {
	FairMarketValue(ctx context.Context, brand, modelName string, year int, opts Options) (*Result, error)
}

// MarketAnalyzer implements Analyzer over a history.Store.
type MarketAnalyzer struct {
	store history.Store
	cfg   config.AnalyzerConfig
	log   *slog.Logger
	now   func() time.Time
}

// New builds a MarketAnalyzer. A nil logger falls back to slog.Default().
func New(store history.Store, cfg config.AnalyzerConfig, logger *slog.Logger) *MarketAnalyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketAnalyzer{
		store: store,
		cfg:   cfg,
		log:   logger,
		now:   time.Now,
	}
}

// comparable pairs a sale record with its year-adjusted price.
type comparable struct {
	record   model.MarketHistoryRecord
	year     int
	adjusted float64
}

func (c comparable) adjustedPrice() float64 {
	if c.adjusted > 0 {
		return c.adjusted
	}
	return c.record.PriceEUR
}

// FairMarketValue returns the median comparable price with confidence and
// range. Store failures surface as errors; an empty market yields the
// estimation fallback, never an error.
func (a *MarketAnalyzer) FairMarketValue(ctx context.Context, brand, modelName string, year int, opts Options) (*Result, error) {
	a.log.Debug("analyzing market", "brand", brand, "model", modelName, "year", year)

	comps, err := a.marketData(ctx, brand, modelName, year, opts)
	if err != nil {
		return nil, err
	}

	if len(comps) == 0 {
		a.log.Debug("no market data, using estimation", "brand", brand, "model", modelName)
		return a.estimate(brand, year, opts), nil
	}

	filtered := removeOutliers(comps)

	prices := make([]float64, 0, len(filtered))
	for _, c := range filtered {
		prices = append(prices, c.adjustedPrice())
	}

	median := Median(prices)
	confidence := sampleConfidence(prices)

	minPrice, maxPrice := prices[0], prices[0]
	for _, p := range prices {
		minPrice = math.Min(minPrice, p)
		maxPrice = math.Max(maxPrice, p)
	}

	a.log.Debug("fmv computed",
		"brand", brand, "model", modelName,
		"fmv", math.Round(median), "confidence", confidence, "samples", len(filtered))

	return &Result{
		FMV:        math.Round(median),
		Confidence: confidence,
		SampleSize: len(filtered),
		PriceRange: Range{
			Min: minPrice,
			Max: maxPrice,
			Q1:  Percentile(prices, 25),
			Q3:  Percentile(prices, 75),
		},
		DataSource:  "market_history",
		LastUpdated: a.now(),
	}, nil
}

// marketData fetches comparables, applies size/material filters as long as
// enough rows survive, backfills years from titles, and adjusts prices toward
// the target year.
func (a *MarketAnalyzer) marketData(ctx context.Context, brand, modelName string, year int, opts Options) ([]comparable, error) {
	if brand == "" {
		return nil, nil
	}

	since := a.now().AddDate(0, 0, -a.cfg.RecentDays)
	patterns := BuildModelPatterns(modelName)

	var records []model.MarketHistoryRecord
	var err error

	if len(patterns) > 0 {
		records, err = a.store.Comparables(ctx, history.ComparableQuery{
			Brand:    brand,
			Patterns: patterns,
			Since:    since,
			Limit:    a.cfg.MaxComparables,
		})
		if err != nil {
			return nil, err
		}
	}

	if len(records) < a.cfg.MinFilterSample {
		records, err = a.store.Comparables(ctx, history.ComparableQuery{
			Brand: brand,
			Since: since,
			Limit: a.cfg.MaxComparables,
		})
		if err != nil {
			return nil, err
		}
	}

	filtered := records

	if opts.FrameSize != "" {
		sized := filterRecords(filtered, func(r model.MarketHistoryRecord) bool {
			return r.FrameSize != "" && equalFold(r.FrameSize, opts.FrameSize)
		})
		if len(sized) >= a.cfg.MinFilterSample {
			filtered = sized
		}
	}

	if opts.FrameMaterial != "" {
		material := filterRecords(filtered, func(r model.MarketHistoryRecord) bool {
			return r.FrameMaterial != "" && containsFold(r.FrameMaterial, opts.FrameMaterial)
		})
		if len(material) >= a.cfg.MinFilterSample {
			filtered = material
		}
	}

	if len(filtered) < a.cfg.MinFilterSample && len(records) >= a.cfg.MinFilterSample {
		a.log.Debug("filters too narrow, using unfiltered comparables",
			"filtered", len(filtered), "unfiltered", len(records))
		filtered = records
	}

	comps := make([]comparable, 0, len(filtered))
	for _, r := range filtered {
		y := r.Year
		if y == 0 {
			y = ExtractYearFromTitle(r.Title, a.now())
		}
		comps = append(comps, comparable{record: r, year: y})
	}

	comps = selectBestYearSubset(comps, year)

	for i := range comps {
		comps[i].adjusted = a.adjustPriceForYear(comps[i].record.PriceEUR, comps[i].year, year)
	}
	return comps, nil
}

// selectBestYearSubset prefers exact-year comparables, then widening year
// windows, falling back to the whole set.
func selectBestYearSubset(comps []comparable, targetYear int) []comparable {
	if targetYear == 0 {
		return comps
	}

	exact := filterComps(comps, func(c comparable) bool { return c.year == targetYear })
	if len(exact) >= 3 {
		return exact
	}

	near1 := filterComps(comps, func(c comparable) bool {
		return c.year != 0 && abs(c.year-targetYear) <= 1
	})
	if len(near1) >= 5 {
		return near1
	}

	near2 := filterComps(comps, func(c comparable) bool {
		return c.year != 0 && abs(c.year-targetYear) <= 2
	})
	if len(near2) >= 5 {
		return near2
	}

	return comps
}

// adjustPriceForYear scales a comparable's price toward the target model year
// at the configured annual rate, clamped to MaxYearAdjust years.
func (a *MarketAnalyzer) adjustPriceForYear(price float64, rowYear, targetYear int) float64 {
	if price == 0 || targetYear == 0 || rowYear == 0 {
		return price
	}
	diff := targetYear - rowYear
	if diff > a.cfg.MaxYearAdjust {
		diff = a.cfg.MaxYearAdjust
	}
	if diff < -a.cfg.MaxYearAdjust {
		diff = -a.cfg.MaxYearAdjust
	}
	if diff == 0 {
		return price
	}
	factor := math.Pow(1-a.cfg.AnnualAdjust, float64(-diff))
	return price * factor
}

func filterRecords(records []model.MarketHistoryRecord, keep func(model.MarketHistoryRecord) bool) []model.MarketHistoryRecord {
	out := make([]model.MarketHistoryRecord, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

func filterComps(comps []comparable, keep func(comparable) bool) []comparable {
	out := make([]comparable, 0, len(comps))
	for _, c := range comps {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
