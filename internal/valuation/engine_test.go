package valuation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/g1nlyf/bikewerk/internal/analyzer"
	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/history"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// stubAnalyzer returns a canned result or error.
type stubAnalyzer struct {
	res *analyzer.Result
	err error
}

func (s *stubAnalyzer) FairMarketValue(context.Context, string, string, int, analyzer.Options) (*analyzer.Result, error) {
	return s.res, s.err
}

func record(brand, modelName string, year int, price float64, category string) model.MarketHistoryRecord {
	return model.MarketHistoryRecord{
		Brand:    brand,
		Model:    modelName,
		Year:     year,
		PriceEUR: price,
		Category: category,
	}
}

func newEngine(store history.Store, an analyzer.Analyzer) *Engine {
	return NewEngine(store, an, config.Default().Valuation, nil)
}

func TestCalculateFMV_ExactTier(t *testing.T) {
	store := history.NewMemoryStore([]model.MarketHistoryRecord{
		record("Canyon", "Spectral CF 8", 2020, 2000, "enduro"),
		record("Canyon", "Spectral CF 8", 2021, 2200, "enduro"),
		record("Canyon", "Spectral CF 8", 2019, 2400, "enduro"),
	})

	listing := model.ListingCandidate{
		Brand:          "Canyon",
		Model:          "Spectral CF 8",
		Year:           2020,
		ConditionGrade: model.GradeB,
	}

	res, err := newEngine(store, nil).CalculateFMV(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}

	// avg(2000, 2200, 2400) = 2200, grade B keeps 85% = 1870
	if res.FMV != 2200 {
		t.Errorf("FMV = %v, want 2200", res.FMV)
	}
	if res.FinalPrice != 1870 {
		t.Errorf("FinalPrice = %v, want 1870", res.FinalPrice)
	}
	if res.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %s, want HIGH", res.Confidence)
	}
	if res.Method != MethodExact {
		t.Errorf("Method = %s, want exact", res.Method)
	}
	if res.SampleSize != 3 {
		t.Errorf("SampleSize = %d, want 3", res.SampleSize)
	}
}

func TestCalculateFMV_ExactTierFiltersCheapAndFarYears(t *testing.T) {
	store := history.NewMemoryStore([]model.MarketHistoryRecord{
		record("Canyon", "Spectral CF 8", 2020, 2000, "enduro"),
		record("Canyon", "Spectral CF 8", 2020, 400, "enduro"),  // below floor
		record("Canyon", "Spectral CF 8", 2015, 2200, "enduro"), // outside window
	})

	listing := model.ListingCandidate{Brand: "Canyon", Model: "Spectral CF 8", Year: 2020}

	res, err := newEngine(store, nil).CalculateFMV(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only one comparable survives, so the exact tier abstains and nothing
	// else matches either.
	if res != nil {
		t.Errorf("expected no opinion, got %+v", res)
	}
}

func TestCalculateFMV_SimilarTier(t *testing.T) {
	store := history.NewMemoryStore([]model.MarketHistoryRecord{
		record("Canyon", "Spectral CF 7", 2019, 2000, "enduro"),
		record("Canyon", "Spectral CF 9", 2020, 2000, "enduro"),
		record("Canyon", "Spectral CFR", 2021, 2000, "enduro"),
		record("Canyon", "Spectral CF 7", 2018, 2000, "enduro"),
		record("Canyon", "Spectral CF 9", 2022, 2000, "enduro"),
	})

	listing := model.ListingCandidate{
		Brand:          "Canyon",
		Model:          "Spectral CF 8",
		Year:           2020,
		ConditionGrade: model.GradeA,
	}

	res, err := newEngine(store, nil).CalculateFMV(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}

	// avg 2000 * 0.9 similar discount = 1800, grade A unchanged
	if res.FMV != 1800 {
		t.Errorf("FMV = %v, want 1800", res.FMV)
	}
	if res.FinalPrice != 1800 {
		t.Errorf("FinalPrice = %v, want 1800", res.FinalPrice)
	}
	if res.Confidence != ConfidenceMedium {
		t.Errorf("Confidence = %s, want MEDIUM", res.Confidence)
	}
	if res.Method != MethodSimilar {
		t.Errorf("Method = %s, want similar", res.Method)
	}
}

func TestCalculateFMV_CategoryTier(t *testing.T) {
	store := history.NewMemoryStore([]model.MarketHistoryRecord{
		record("Propain", "Tyee", 2020, 2000, "enduro"),
		record("Radon", "Swoop", 2019, 2000, "enduro"),
	})

	listing := model.ListingCandidate{
		Brand:    "Santa Cruz",
		Model:    "Megatower",
		Category: "enduro",
	}

	res, err := newEngine(store, nil).CalculateFMV(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}

	// avg 2000 * 1.35 brand multiplier * 0.85 discount = 2295
	if res.FMV != 2295 {
		t.Errorf("FMV = %v, want 2295", res.FMV)
	}
	// unknown grade takes the 15% default: round(2295 * 0.85) = 1951
	if res.FinalPrice != 1951 {
		t.Errorf("FinalPrice = %v, want 1951", res.FinalPrice)
	}
	if res.Confidence != ConfidenceLow {
		t.Errorf("Confidence = %s, want LOW", res.Confidence)
	}
	if res.Method != MethodCategory {
		t.Errorf("Method = %s, want category", res.Method)
	}
}

func TestCalculateFMV_CategoryTierUnlistedBrand(t *testing.T) {
	store := history.NewMemoryStore([]model.MarketHistoryRecord{
		record("Propain", "Tyee", 2020, 2000, "enduro"),
	})

	listing := model.ListingCandidate{
		Brand:          "Kellys",
		Model:          "Swag",
		Category:       "enduro",
		ConditionGrade: model.GradeA,
	}

	res, err := newEngine(store, nil).CalculateFMV(context.Background(), listing)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}

	// Unknown brand multiplies by 1.0: 2000 * 0.85 = 1700.
	if res.FMV != 1700 {
		t.Errorf("FMV = %v, want 1700", res.FMV)
	}
}

func TestCalculateFMV_MissingIdentity(t *testing.T) {
	store := history.NewMemoryStore(nil)
	eng := newEngine(store, nil)

	for _, listing := range []model.ListingCandidate{
		{Model: "Spectral CF 8"},
		{Brand: "Canyon"},
		{},
	} {
		res, err := eng.CalculateFMV(context.Background(), listing)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res != nil {
			t.Errorf("listing %+v: expected no opinion", listing)
		}
	}
}

func TestCalculateFMV_NoData(t *testing.T) {
	store := history.NewMemoryStore(nil)

	res, err := newEngine(store, nil).CalculateFMV(context.Background(), model.ListingCandidate{
		Brand: "Canyon", Model: "Spectral CF 8", Category: "enduro",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != nil {
		t.Errorf("expected no opinion, got %+v", res)
	}
}

func TestCalculateFMV_StoreErrorPropagates(t *testing.T) {
	store := &history.MemoryStore{Err: errors.New("connection refused")}

	res, err := newEngine(store, nil).CalculateFMV(context.Background(), model.ListingCandidate{
		Brand: "Canyon", Model: "Spectral CF 8",
	})
	if err == nil {
		t.Fatal("expected a store error")
	}
	if res != nil {
		t.Errorf("result must be nil on error, got %+v", res)
	}
	if !strings.Contains(err.Error(), "exact tier") {
		t.Errorf("error should name the failing tier: %v", err)
	}
}

func TestCalculateFMV_AnalyzerTier(t *testing.T) {
	an := &stubAnalyzer{res: &analyzer.Result{
		FMV:        2500,
		Confidence: 0.85,
		SampleSize: 12,
		PriceRange: analyzer.Range{Min: 2000, Max: 3000},
		DataSource: "market_history",
	}}
	store := history.NewMemoryStore(nil)

	res, err := newEngine(store, an).CalculateFMV(context.Background(), model.ListingCandidate{
		Brand: "Canyon", Model: "Spectral CF 8", ConditionGrade: model.GradeA,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil {
		t.Fatal("expected a result")
	}

	if res.FMV != 2500 {
		t.Errorf("FMV = %v, want 2500", res.FMV)
	}
	if res.Confidence != ConfidenceHigh {
		t.Errorf("Confidence = %s, want HIGH", res.Confidence)
	}
	if res.ConfidenceScore != 0.85 {
		t.Errorf("ConfidenceScore = %v, want 0.85", res.ConfidenceScore)
	}
	if res.Min != 2000 || res.Max != 3000 {
		t.Errorf("range = [%v, %v], want [2000, 3000]", res.Min, res.Max)
	}
	if res.Method != "market_history" {
		t.Errorf("Method = %s, want market_history", res.Method)
	}
}

func TestCalculateFMV_AnalyzerErrorDegrades(t *testing.T) {
	an := &stubAnalyzer{err: errors.New("analyzer offline")}
	store := history.NewMemoryStore([]model.MarketHistoryRecord{
		record("Canyon", "Spectral CF 8", 2020, 2000, "enduro"),
		record("Canyon", "Spectral CF 8", 2020, 2000, "enduro"),
		record("Canyon", "Spectral CF 8", 2020, 2000, "enduro"),
	})

	res, err := newEngine(store, an).CalculateFMV(context.Background(), model.ListingCandidate{
		Brand: "Canyon", Model: "Spectral CF 8", Year: 2020, ConditionGrade: model.GradeA,
	})
	if err != nil {
		t.Fatalf("analyzer faults must not surface: %v", err)
	}
	if res == nil {
		t.Fatal("expected the exact tier to answer")
	}
	if res.Method != MethodExact {
		t.Errorf("Method = %s, want exact", res.Method)
	}
}

func TestCalculateFMV_AnalyzerNoOpinionFallsThrough(t *testing.T) {
	an := &stubAnalyzer{} // nil result, nil error
	store := history.NewMemoryStore([]model.MarketHistoryRecord{
		record("Canyon", "Spectral CF 8", 2020, 2100, "enduro"),
		record("Canyon", "Spectral CF 8", 2020, 2100, "enduro"),
		record("Canyon", "Spectral CF 8", 2020, 2100, "enduro"),
	})

	res, err := newEngine(store, an).CalculateFMV(context.Background(), model.ListingCandidate{
		Brand: "Canyon", Model: "Spectral CF 8", Year: 2020, ConditionGrade: model.GradeA,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res == nil || res.Method != MethodExact {
		t.Fatalf("expected exact tier fallback, got %+v", res)
	}
}

func TestAnalyzerConfidenceLabels(t *testing.T) {
	tier := &analyzerTier{cutoffs: config.Default().Valuation.Confidence}

	cases := []struct {
		score   float64
		samples int
		want    Confidence
	}{
		{0.85, 2, ConfidenceHigh},   // score alone
		{0.50, 25, ConfidenceHigh},  // sample size alone
		{0.65, 2, ConfidenceMedium}, // score alone
		{0.30, 10, ConfidenceMedium},
		{0.30, 3, ConfidenceLow},
	}

	for _, tc := range cases {
		if got := tier.label(tc.score, tc.samples); got != tc.want {
			t.Errorf("label(%v, %d) = %s, want %s", tc.score, tc.samples, got, tc.want)
		}
	}
}

func TestModelKeywords(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Spectral CF 8", "Spectral CF"},
		{"Megatower", "Megatower"},
		{"", ""},
		{"  Jeffsy   Core  3 ", "Jeffsy Core"},
	}

	for _, tc := range cases {
		if got := modelKeywords(tc.in); got != tc.want {
			t.Errorf("modelKeywords(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
