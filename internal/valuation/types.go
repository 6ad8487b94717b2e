package valuation

// Confidence labels an estimate's trustworthiness.
type Confidence string

const (
	ConfidenceHigh   Confidence = "HIGH"
	ConfidenceMedium Confidence = "MEDIUM"
	ConfidenceLow    Confidence = "LOW"
)

// Estimate methods. The analyzer tier reports its own data source
// ("market_history" or "estimation") instead of a fixed name.
const (
	MethodExact        = "exact"
	MethodSimilar      = "similar"
	MethodCategory     = "category"
	MethodDepreciation = "depreciation"
	MethodAnalyzer     = "analyzer"
)

// FMVEstimate is a tier's raw opinion before condition adjustment.
type FMVEstimate struct {
	FMV             float64
	Confidence      Confidence
	ConfidenceScore float64 // 0 when the tier produces no numeric score
	SampleSize      int
	Min             float64
	Max             float64
	Method          string
}

// ValuationResult is the final condition-adjusted judgment handed to the
// acquisition pipeline.
type ValuationResult struct {
	FMV             float64
	FinalPrice      float64
	Confidence      Confidence
	ConfidenceScore float64
	SampleSize      int
	Min             float64
	Max             float64
	Adjustments     []string
	Method          string
	BaseYear        int // set on depreciation extrapolation only
}
