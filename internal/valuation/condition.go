package valuation

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// Adjuster converts a condition grade into a price penalty. Pure aside from
// logging.
type Adjuster struct {
	cfg config.ValuationConfig
	log *slog.Logger
}

// NewAdjuster builds an Adjuster. A nil logger falls back to slog.Default().
func NewAdjuster(cfg config.ValuationConfig, logger *slog.Logger) *Adjuster {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adjuster{cfg: cfg, log: logger}
}

// Penalty returns the price fraction deducted for a grade. Unknown grades get
// the default penalty.
func (a *Adjuster) Penalty(grade model.ConditionGrade) float64 {
	if p, ok := a.cfg.ConditionPenalties[string(grade)]; ok {
		return p
	}
	return a.cfg.DefaultPenalty
}

// ApplyConditionPenalty discounts a base FMV by the grade penalty and folds
// the tier estimate's metadata into the final result.
func (a *Adjuster) ApplyConditionPenalty(baseFMV float64, grade model.ConditionGrade, est *FMVEstimate) *ValuationResult {
	penalty := a.Penalty(grade)
	finalPrice := math.Round(baseFMV * (1 - penalty))

	gradeLabel := string(grade)
	if gradeLabel == "" {
		gradeLabel = "Unknown"
	}
	a.log.Debug("condition penalty applied",
		"grade", gradeLabel, "penalty_pct", penalty*100, "final_price", finalPrice)

	result := &ValuationResult{
		FMV:         math.Round(baseFMV),
		FinalPrice:  finalPrice,
		Adjustments: []string{fmt.Sprintf("Condition Penalty (-%.0f%%)", penalty*100)},
	}
	if est != nil {
		result.Confidence = est.Confidence
		result.ConfidenceScore = est.ConfidenceScore
		result.SampleSize = est.SampleSize
		result.Min = est.Min
		result.Max = est.Max
		result.Method = est.Method
	}
	return result
}
