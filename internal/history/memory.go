package history

import (
	"context"
	"sort"
	"strings"

	"github.com/g1nlyf/bikewerk/internal/model"
)

// MemoryStore is an in-memory Store used in tests and offline tooling. It
// mirrors the SQL matching semantics: LIKE comparisons are case-insensitive
// substring matches.
type MemoryStore struct {
	Records []model.MarketHistoryRecord

	// Err, when set, is returned by every query. Used to exercise the
	// store-fault path.
	Err error
}

// NewMemoryStore builds a store over a fixed record set.
func NewMemoryStore(records []model.MarketHistoryRecord) *MemoryStore {
	return &MemoryStore{Records: records}
}

func (m *MemoryStore) ExactModelStats(_ context.Context, modelName string, yearMin, yearMax int, minPrice float64) (Stats, error) {
	if m.Err != nil {
		return Stats{}, m.Err
	}
	var sum float64
	var n int
	for _, r := range m.Records {
		if !containsFold(r.Model, modelName) {
			continue
		}
		if r.Year < yearMin || r.Year > yearMax {
			continue
		}
		if r.PriceEUR <= minPrice {
			continue
		}
		sum += r.PriceEUR
		n++
	}
	return average(sum, n), nil
}

func (m *MemoryStore) SimilarModelStats(_ context.Context, brand, modelPattern string, minPrice float64) (Stats, error) {
	if m.Err != nil {
		return Stats{}, m.Err
	}
	var sum float64
	var n int
	for _, r := range m.Records {
		if r.Brand != brand {
			continue
		}
		if !containsFold(r.Model, modelPattern) {
			continue
		}
		if r.PriceEUR <= minPrice {
			continue
		}
		sum += r.PriceEUR
		n++
	}
	return average(sum, n), nil
}

func (m *MemoryStore) CategoryStats(_ context.Context, category, frameMaterial string, minPrice, maxPrice float64) (Stats, error) {
	if m.Err != nil {
		return Stats{}, m.Err
	}
	var sum float64
	var n int
	for _, r := range m.Records {
		if r.Category != category {
			continue
		}
		if frameMaterial != "" && r.FrameMaterial != frameMaterial {
			continue
		}
		if r.PriceEUR < minPrice || r.PriceEUR > maxPrice {
			continue
		}
		sum += r.PriceEUR
		n++
	}
	return average(sum, n), nil
}

func (m *MemoryStore) YearBuckets(_ context.Context, brand, modelPattern string, minPrice float64, minCount int) ([]YearBucket, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	sums := map[int]float64{}
	counts := map[int]int{}
	for _, r := range m.Records {
		if r.Brand != brand || r.Year == 0 {
			continue
		}
		if !containsFold(r.Model, modelPattern) {
			continue
		}
		if r.PriceEUR <= minPrice {
			continue
		}
		sums[r.Year] += r.PriceEUR
		counts[r.Year]++
	}

	var buckets []YearBucket
	for year, n := range counts {
		if n < minCount {
			continue
		}
		buckets = append(buckets, YearBucket{Year: year, AvgPrice: sums[year] / float64(n), Count: n})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Year < buckets[j].Year })
	return buckets, nil
}

func (m *MemoryStore) Comparables(_ context.Context, q ComparableQuery) ([]model.MarketHistoryRecord, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var out []model.MarketHistoryRecord
	for _, r := range m.Records {
		if !strings.EqualFold(r.Brand, q.Brand) {
			continue
		}
		if r.PriceEUR <= 0 {
			continue
		}
		if !q.Since.IsZero() && !r.CreatedAt.After(q.Since) {
			continue
		}
		if len(q.Patterns) > 0 && !matchAnyPattern(r, q.Patterns) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func matchAnyPattern(r model.MarketHistoryRecord, patterns []string) bool {
	for _, p := range patterns {
		term := strings.Trim(p, "%")
		if containsFold(r.Model, term) || containsFold(r.Title, term) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func average(sum float64, n int) Stats {
	if n == 0 {
		return Stats{}
	}
	return Stats{Average: sum / float64(n), Count: n}
}
