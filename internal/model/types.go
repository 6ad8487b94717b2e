package model

import "time"

// ConditionGrade is the letter grade assigned by the external inspection
// pipeline. Only consumed here as a pricing adjustment input.
type ConditionGrade string

const (
	GradeA ConditionGrade = "A"
	GradeB ConditionGrade = "B"
	GradeC ConditionGrade = "C"
	GradeD ConditionGrade = "D"
)

// ShippingOption mirrors the classified-ad delivery field.
type ShippingOption string

const (
	ShippingAvailable ShippingOption = "available"
	ShippingPickup    ShippingOption = "pickup"
)

// MarketHistoryRecord is a single past sale. Externally owned, never mutated.
type MarketHistoryRecord struct {
	Brand         string
	Model         string
	Title         string
	Year          int
	PriceEUR      float64
	Category      string
	FrameSize     string
	FrameMaterial string
	QualityScore  int
	CreatedAt     time.Time
}

// ListingCandidate is a scraped classified-ad listing as handed over by the
// scraping pipeline. The engine only reads it.
// Add fields as the upstream parsers harden (trim level, wheel size, etc.).
type ListingCandidate struct {
	Brand          string
	Model          string
	Year           int
	FrameSize      string
	FrameMaterial  string
	Category       string
	Price          float64
	ConditionGrade ConditionGrade
	Description    string
	Shipping       ShippingOption
	Views          int
	PublishDate    time.Time
	URL            string
}
