package config

import "time"

// Config is the root configuration for the valuation engine and its tooling.
// Loaded once at startup and treated as read-only afterwards; every pricing
// table lives here so call sites cannot drift apart.
type Config struct {
	Database  DBConfig        `yaml:"database"`
	Valuation ValuationConfig `yaml:"valuation"`
	Analyzer  AnalyzerConfig  `yaml:"analyzer"`
	Sniper    SniperConfig    `yaml:"sniper"`
	Hotness   HotnessConfig   `yaml:"hotness"`
	Salvage   SalvageConfig   `yaml:"salvage"`
	Sweep     SweepConfig     `yaml:"sweep"`
}

// DBConfig holds the market history database connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// ValuationConfig drives the tiered FMV fallback and condition adjustment.
type ValuationConfig struct {
	// Condition penalties by grade letter. Missing grades use DefaultPenalty.
	ConditionPenalties map[string]float64 `yaml:"condition_penalties"`
	DefaultPenalty     float64            `yaml:"default_penalty"`

	// Brand premium multipliers applied on the category-average tier.
	BrandMultipliers map[string]float64 `yaml:"brand_multipliers"`

	MinComparableEUR  float64 `yaml:"min_comparable_eur"`  // floor for exact/similar comparables
	CategoryMinEUR    float64 `yaml:"category_min_eur"`    // category tier price window
	CategoryMaxEUR    float64 `yaml:"category_max_eur"`
	ExactMinSamples   int     `yaml:"exact_min_samples"`
	SimilarMinSamples int     `yaml:"similar_min_samples"`
	SimilarDiscount   float64 `yaml:"similar_discount"`  // lower match confidence haircut
	CategoryDiscount  float64 `yaml:"category_discount"`

	Confidence   ConfidenceCutoffs  `yaml:"confidence"`
	Depreciation DepreciationConfig `yaml:"depreciation"`
}

// ConfidenceCutoffs maps an analyzer (score, sample size) pair to a label.
// Score and sample size combine with OR, matching observed behavior.
type ConfidenceCutoffs struct {
	HighScore     float64 `yaml:"high_score"`
	HighSamples   int     `yaml:"high_samples"`
	MediumScore   float64 `yaml:"medium_score"`
	MediumSamples int     `yaml:"medium_samples"`
}

// DepreciationConfig drives year-bucket extrapolation when no direct data
// exists for the target year.
type DepreciationConfig struct {
	AppreciationRate float64 `yaml:"appreciation_rate"` // per year toward a newer target
	DepreciationRate float64 `yaml:"depreciation_rate"` // per year toward an older target
	MaxYearDistance  int     `yaml:"max_year_distance"`
	BucketMinSamples int     `yaml:"bucket_min_samples"`
}

// AnalyzerConfig tunes the statistical market analyzer.
type AnalyzerConfig struct {
	RecentDays      int     `yaml:"recent_days"`       // comparables lookback window
	MaxComparables  int     `yaml:"max_comparables"`   // query LIMIT
	AnnualAdjust    float64 `yaml:"annual_adjust"`     // per-year price adjustment toward target year
	MaxYearAdjust   int     `yaml:"max_year_adjust"`   // clamp for year adjustment distance
	MinFilterSample int     `yaml:"min_filter_sample"` // keep size/material filters only above this
}

// SniperConfig holds the acquisition thresholds.
type SniperConfig struct {
	ShippingRatio float64 `yaml:"shipping_ratio"`
	PickupRatio   float64 `yaml:"pickup_ratio"`
}

// HotnessConfig tunes the profit-times-velocity ranking.
type HotnessConfig struct {
	MinHoursAlive float64 `yaml:"min_hours_alive"`
}

// SalvageConfig drives the teardown-value estimate.
type SalvageConfig struct {
	PartOutRatio    float64  `yaml:"part_out_ratio"`
	PremiumBoost    float64  `yaml:"premium_boost"`
	PremiumKeywords []string `yaml:"premium_keywords"`
	LaborCostEUR    float64  `yaml:"labor_cost_eur"`
	ShippingBuffer  float64  `yaml:"shipping_buffer"`
	MinGemProfit    float64  `yaml:"min_gem_profit"`
	MinGemROI       float64  `yaml:"min_gem_roi"`
}

// SweepConfig holds batch evaluation settings.
type SweepConfig struct {
	Workers      int           `yaml:"workers"`
	RatePerSec   float64       `yaml:"rate_per_sec"`
	SnapshotDir  string        `yaml:"snapshot_dir"`
	CronSchedule string        `yaml:"cron_schedule"`
	Timeout      time.Duration `yaml:"timeout"`
}
