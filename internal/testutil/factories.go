package testutil

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/g1nlyf/bikewerk/internal/model"
)

// TestDataFactory generates deterministic market fixtures for tests.
type TestDataFactory struct {
	rand *rand.Rand
}

// NewTestDataFactory creates a factory with a seeded random generator.
func NewTestDataFactory(seed int64) *TestDataFactory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &TestDataFactory{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// GenerateBrand returns a random known brand.
func (f *TestDataFactory) GenerateBrand() string {
	brands := []string{"Specialized", "Canyon", "YT", "Santa Cruz", "Cube", "Trek"}
	return brands[f.rand.Intn(len(brands))]
}

// GenerateModel returns a random model name.
func (f *TestDataFactory) GenerateModel() string {
	models := []string{"Stumpjumper Expert", "Spectral CF", "Capra Core", "Hightower", "Stereo 150"}
	return models[f.rand.Intn(len(models))]
}

// GeneratePriceEUR returns a used-bike price between 600 and 5600 EUR.
func (f *TestDataFactory) GeneratePriceEUR() float64 {
	return float64(f.rand.Intn(5000) + 600)
}

// GenerateYear returns a model year within the last eight years.
func (f *TestDataFactory) GenerateYear() int {
	return time.Now().Year() - f.rand.Intn(8)
}

// GenerateGrade returns a random condition grade.
func (f *TestDataFactory) GenerateGrade() model.ConditionGrade {
	grades := []model.ConditionGrade{model.GradeA, model.GradeB, model.GradeC, model.GradeD}
	return grades[f.rand.Intn(len(grades))]
}

// GenerateHistoryRecord builds a plausible past sale.
func (f *TestDataFactory) GenerateHistoryRecord() model.MarketHistoryRecord {
	brand := f.GenerateBrand()
	modelName := f.GenerateModel()
	year := f.GenerateYear()
	return model.MarketHistoryRecord{
		Brand:         brand,
		Model:         modelName,
		Title:         fmt.Sprintf("%s %s %d", brand, modelName, year),
		Year:          year,
		PriceEUR:      f.GeneratePriceEUR(),
		Category:      "enduro",
		FrameSize:     "L",
		FrameMaterial: "carbon",
		QualityScore:  70 + f.rand.Intn(30),
		CreatedAt:     time.Now().AddDate(0, 0, -f.rand.Intn(300)),
	}
}

// GenerateHistoryRecords builds n records for one brand/model around a base
// price, spanning the given year.
func (f *TestDataFactory) GenerateHistoryRecords(n int, brand, modelName string, year int, basePrice float64) []model.MarketHistoryRecord {
	records := make([]model.MarketHistoryRecord, 0, n)
	for i := 0; i < n; i++ {
		jitter := basePrice * (f.rand.Float64()*0.2 - 0.1) // +-10%
		records = append(records, model.MarketHistoryRecord{
			Brand:         brand,
			Model:         modelName,
			Title:         fmt.Sprintf("%s %s %d", brand, modelName, year),
			Year:          year,
			PriceEUR:      basePrice + jitter,
			Category:      "enduro",
			FrameMaterial: "carbon",
			QualityScore:  80,
			CreatedAt:     time.Now().AddDate(0, 0, -1-f.rand.Intn(60)),
		})
	}
	return records
}

// GenerateListing builds a listing candidate for the given price and grade.
func (f *TestDataFactory) GenerateListing(brand, modelName string, year int, price float64, grade model.ConditionGrade) model.ListingCandidate {
	return model.ListingCandidate{
		Brand:          brand,
		Model:          modelName,
		Year:           year,
		FrameSize:      "L",
		FrameMaterial:  "carbon",
		Category:       "enduro",
		Price:          price,
		ConditionGrade: grade,
		Shipping:       model.ShippingAvailable,
		Views:          f.rand.Intn(500),
		PublishDate:    time.Now().Add(-time.Duration(1+f.rand.Intn(48)) * time.Hour),
		URL:            fmt.Sprintf("https://kleinanzeigen.test/anzeige/%d", f.rand.Int63()),
	}
}
