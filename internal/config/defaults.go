package config

import "time"

// Default values for optional configuration fields. The pricing tables mirror
// what the acquisition team calibrated against the sale history.
const (
	DefaultDBPort   = 5432
	DefaultDBSSL    = "prefer"
	DefaultMaxConns = 10
	DefaultMinConns = 2

	DefaultPenaltyUnknownGrade = 0.15

	DefaultMinComparableEUR  = 500
	DefaultCategoryMinEUR    = 800
	DefaultCategoryMaxEUR    = 5000
	DefaultExactMinSamples   = 3
	DefaultSimilarMinSamples = 5
	DefaultSimilarDiscount   = 0.9
	DefaultCategoryDiscount  = 0.85

	DefaultHighScore     = 0.8
	DefaultHighSamples   = 20
	DefaultMediumScore   = 0.6
	DefaultMediumSamples = 8

	DefaultAppreciationRate = 1.08
	DefaultDepreciationRate = 0.88
	DefaultMaxYearDistance  = 5
	DefaultBucketMinSamples = 3

	DefaultRecentDays      = 365
	DefaultMaxComparables  = 300
	DefaultAnnualAdjust    = 0.12
	DefaultMaxYearAdjust   = 6
	DefaultMinFilterSample = 3

	DefaultShippingRatio = 0.85
	DefaultPickupRatio   = 0.75

	DefaultMinHoursAlive = 0.5

	DefaultPartOutRatio   = 0.65
	DefaultPremiumBoost   = 0.10
	DefaultLaborCostEUR   = 150
	DefaultShippingBuffer = 50
	DefaultMinGemProfit   = 300
	DefaultMinGemROI      = 0.3

	DefaultSweepWorkers    = 4
	DefaultSweepRatePerSec = 10
	DefaultSweepTimeout    = 30 * time.Second
	DefaultSnapshotDir     = "data/sweeps"
)

func defaultConditionPenalties() map[string]float64 {
	return map[string]float64{
		"A": 0.0,
		"B": 0.15,
		"C": 0.30,
		"D": 0.50,
	}
}

func defaultBrandMultipliers() map[string]float64 {
	return map[string]float64{
		"Santa Cruz":  1.35,
		"YT":          1.30,
		"Pivot":       1.35,
		"Canyon":      1.20,
		"Specialized": 1.25,
		"Trek":        1.15,
		"Cube":        0.95,
		"Ghost":       0.90,
	}
}

func defaultPremiumKeywords() []string {
	return []string{"fox factory", "kashima", "axs", "xtr", "xx1"}
}

// ApplyDefaults fills zero-valued fields. Exported so callers constructing a
// Config in code (tests, one-shot tools) get the same tables as YAML users.
func (c *Config) ApplyDefaults() {
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSL
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	v := &c.Valuation
	if v.ConditionPenalties == nil {
		v.ConditionPenalties = defaultConditionPenalties()
	}
	if v.DefaultPenalty == 0 {
		v.DefaultPenalty = DefaultPenaltyUnknownGrade
	}
	if v.BrandMultipliers == nil {
		v.BrandMultipliers = defaultBrandMultipliers()
	}
	if v.MinComparableEUR == 0 {
		v.MinComparableEUR = DefaultMinComparableEUR
	}
	if v.CategoryMinEUR == 0 {
		v.CategoryMinEUR = DefaultCategoryMinEUR
	}
	if v.CategoryMaxEUR == 0 {
		v.CategoryMaxEUR = DefaultCategoryMaxEUR
	}
	if v.ExactMinSamples == 0 {
		v.ExactMinSamples = DefaultExactMinSamples
	}
	if v.SimilarMinSamples == 0 {
		v.SimilarMinSamples = DefaultSimilarMinSamples
	}
	if v.SimilarDiscount == 0 {
		v.SimilarDiscount = DefaultSimilarDiscount
	}
	if v.CategoryDiscount == 0 {
		v.CategoryDiscount = DefaultCategoryDiscount
	}
	if v.Confidence.HighScore == 0 {
		v.Confidence.HighScore = DefaultHighScore
	}
	if v.Confidence.HighSamples == 0 {
		v.Confidence.HighSamples = DefaultHighSamples
	}
	if v.Confidence.MediumScore == 0 {
		v.Confidence.MediumScore = DefaultMediumScore
	}
	if v.Confidence.MediumSamples == 0 {
		v.Confidence.MediumSamples = DefaultMediumSamples
	}
	if v.Depreciation.AppreciationRate == 0 {
		v.Depreciation.AppreciationRate = DefaultAppreciationRate
	}
	if v.Depreciation.DepreciationRate == 0 {
		v.Depreciation.DepreciationRate = DefaultDepreciationRate
	}
	if v.Depreciation.MaxYearDistance == 0 {
		v.Depreciation.MaxYearDistance = DefaultMaxYearDistance
	}
	if v.Depreciation.BucketMinSamples == 0 {
		v.Depreciation.BucketMinSamples = DefaultBucketMinSamples
	}

	a := &c.Analyzer
	if a.RecentDays == 0 {
		a.RecentDays = DefaultRecentDays
	}
	if a.MaxComparables == 0 {
		a.MaxComparables = DefaultMaxComparables
	}
	if a.AnnualAdjust == 0 {
		a.AnnualAdjust = DefaultAnnualAdjust
	}
	if a.MaxYearAdjust == 0 {
		a.MaxYearAdjust = DefaultMaxYearAdjust
	}
	if a.MinFilterSample == 0 {
		a.MinFilterSample = DefaultMinFilterSample
	}

	if c.Sniper.ShippingRatio == 0 {
		c.Sniper.ShippingRatio = DefaultShippingRatio
	}
	if c.Sniper.PickupRatio == 0 {
		c.Sniper.PickupRatio = DefaultPickupRatio
	}

	if c.Hotness.MinHoursAlive == 0 {
		c.Hotness.MinHoursAlive = DefaultMinHoursAlive
	}

	s := &c.Salvage
	if s.PartOutRatio == 0 {
		s.PartOutRatio = DefaultPartOutRatio
	}
	if s.PremiumBoost == 0 {
		s.PremiumBoost = DefaultPremiumBoost
	}
	if s.PremiumKeywords == nil {
		s.PremiumKeywords = defaultPremiumKeywords()
	}
	if s.LaborCostEUR == 0 {
		s.LaborCostEUR = DefaultLaborCostEUR
	}
	if s.ShippingBuffer == 0 {
		s.ShippingBuffer = DefaultShippingBuffer
	}
	if s.MinGemProfit == 0 {
		s.MinGemProfit = DefaultMinGemProfit
	}
	if s.MinGemROI == 0 {
		s.MinGemROI = DefaultMinGemROI
	}

	if c.Sweep.Workers == 0 {
		c.Sweep.Workers = DefaultSweepWorkers
	}
	if c.Sweep.RatePerSec == 0 {
		c.Sweep.RatePerSec = DefaultSweepRatePerSec
	}
	if c.Sweep.Timeout == 0 {
		c.Sweep.Timeout = DefaultSweepTimeout
	}
	if c.Sweep.SnapshotDir == "" {
		c.Sweep.SnapshotDir = DefaultSnapshotDir
	}
}

// Default returns a Config populated entirely from defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
