package history

import (
	"context"
	"time"

	"github.com/g1nlyf/bikewerk/internal/model"
)

// Stats is an aggregate over matching sale records.
type Stats struct {
	Average float64
	Count   int
}

// YearBucket is a per-model-year aggregate used for depreciation extrapolation.
type YearBucket struct {
	Year     int
	AvgPrice float64
	Count    int
}

// ComparableQuery selects recent comparable sales for the analyzer.
// Patterns are SQL LIKE patterns matched (case-insensitively) against both the
// model and title columns; an empty list matches on brand alone.
type ComparableQuery struct {
	Brand    string
	Patterns []string
	Since    time.Time
	Limit    int
}

// Store is the read-only market history interface. Implementations run
// aggregate queries only; nothing here writes.
type Store interface {
	// ExactModelStats averages price_eur for sales whose model contains
	// modelName, within [yearMin, yearMax], above minPrice.
	ExactModelStats(ctx context.Context, modelName string, yearMin, yearMax int, minPrice float64) (Stats, error)

	// SimilarModelStats averages price_eur for the brand where the model
	// contains modelPattern, above minPrice.
	SimilarModelStats(ctx context.Context, brand, modelPattern string, minPrice float64) (Stats, error)

	// CategoryStats averages price_eur for a category within a price window,
	// optionally narrowed by frame material.
	CategoryStats(ctx context.Context, category, frameMaterial string, minPrice, maxPrice float64) (Stats, error)

	// YearBuckets groups brand+model sales by year, keeping buckets with at
	// least minCount rows above minPrice.
	YearBuckets(ctx context.Context, brand, modelPattern string, minPrice float64, minCount int) ([]YearBucket, error)

	// Comparables returns recent individual sale records for statistical
	// analysis, newest first.
	Comparables(ctx context.Context, q ComparableQuery) ([]model.MarketHistoryRecord, error)
}
