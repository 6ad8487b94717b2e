package decision

import (
	"fmt"
	"math"
)

// MarketBand classifies a price relative to FMV.
type MarketBand string

const (
	BandUnknown         MarketBand = "unknown"
	BandWellBelowMarket MarketBand = "well_below_market"
	BandBelowMarket     MarketBand = "below_market"
	BandAtMarket        MarketBand = "at_market"
	BandAboveMarket     MarketBand = "above_market"
	BandWellAboveMarket MarketBand = "well_above_market"
)

// CompareToMarket buckets a price into a market band by its percentage
// distance from FMV.
func CompareToMarket(price, fmv float64) MarketBand {
	if fmv <= 0 || price <= 0 {
		return BandUnknown
	}

	diff := ((price - fmv) / fmv) * 100

	switch {
	case diff <= -20:
		return BandWellBelowMarket
	case diff <= -10:
		return BandBelowMarket
	case diff <= 10:
		return BandAtMarket
	case diff <= 25:
		return BandAboveMarket
	default:
		return BandWellAboveMarket
	}
}

// DealOpinion is the coarse "buy it or not" screen used before the sniper
// rule runs.
type DealOpinion struct {
	IsGoodDeal bool
	Discount   int // percent below FMV, rounded
	Confidence float64
	Reason     string
}

// EvaluateDeal flags listings at least 15% below FMV with decent estimate
// confidence.
func EvaluateDeal(price, fmv, confidence float64) DealOpinion {
	if fmv <= 0 || price <= 0 {
		return DealOpinion{Reason: "Insufficient FMV data"}
	}

	discount := ((fmv - price) / fmv) * 100
	isGoodDeal := discount >= 15 && confidence >= 0.6

	var reason string
	switch {
	case isGoodDeal:
		reason = fmt.Sprintf("%.0f%% below market (FMV: €%.0f, confidence: %.0f%%)",
			discount, fmv, confidence*100)
	case discount < 15:
		reason = fmt.Sprintf("Discount too small (%.0f%%, need 15%%+)", discount)
	default:
		reason = fmt.Sprintf("Low FMV confidence (%.0f%%, need 60%%+)", confidence*100)
	}

	return DealOpinion{
		IsGoodDeal: isGoodDeal,
		Discount:   int(math.Round(discount)),
		Confidence: confidence,
		Reason:     reason,
	}
}
