package decision

import (
	"math"
	"strings"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// SalvageEstimate is the teardown-value opinion for a listing. A gem is a
// listing whose parts, sold individually, beat the asking price by a wide
// margin.
type SalvageEstimate struct {
	Value           float64
	PotentialProfit float64
	ROI             float64
	IsGem           bool
}

// SalvageArbitrageEstimator estimates what a bike is worth parted out.
type SalvageArbitrageEstimator struct {
	cfg config.SalvageConfig
}

// NewSalvageArbitrageEstimator builds an estimator from config.
func NewSalvageArbitrageEstimator(cfg config.SalvageConfig) *SalvageArbitrageEstimator {
	return &SalvageArbitrageEstimator{cfg: cfg}
}

// CalculateSalvageValue estimates net teardown value against the asking
// price. The part-out ratio gets a single boost when the description mentions
// any top-tier component; the boost does not stack.
func (s *SalvageArbitrageEstimator) CalculateSalvageValue(listing model.ListingCandidate, fmv float64) SalvageEstimate {
	if fmv <= 0 || listing.Price <= 0 {
		return SalvageEstimate{}
	}

	partOutRatio := s.cfg.PartOutRatio
	desc := strings.ToLower(listing.Description)
	for _, keyword := range s.cfg.PremiumKeywords {
		if strings.Contains(desc, keyword) {
			partOutRatio += s.cfg.PremiumBoost
			break
		}
	}

	estimatedPartValue := math.Round(fmv * partOutRatio)
	netSalvageValue := estimatedPartValue - s.cfg.LaborCostEUR - s.cfg.ShippingBuffer
	potentialProfit := netSalvageValue - listing.Price
	roi := potentialProfit / listing.Price

	return SalvageEstimate{
		Value:           netSalvageValue,
		PotentialProfit: potentialProfit,
		ROI:             roi,
		IsGem:           potentialProfit > s.cfg.MinGemProfit && roi > s.cfg.MinGemROI,
	}
}
