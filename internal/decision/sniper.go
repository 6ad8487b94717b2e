// Package decision holds the pure threshold functions that turn a priced
// listing into acquisition signals: sniper hits, hotness ranking, salvage
// arbitrage, and market comparison bands. No state, no I/O.
package decision

import (
	"fmt"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// Priority ranks how urgently a hit should be acted on.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// SniperDecision says whether a listing is an acquisition target.
type SniperDecision struct {
	IsHit    bool
	Reason   string
	Priority Priority
}

// SniperRuleEvaluator applies the price-vs-FMV threshold. The ratio depends
// only on shipping availability; pickup-only listings need a deeper discount
// to cover the collection overhead.
type SniperRuleEvaluator struct {
	cfg config.SniperConfig
}

// NewSniperRuleEvaluator builds an evaluator from config.
func NewSniperRuleEvaluator(cfg config.SniperConfig) *SniperRuleEvaluator {
	return &SniperRuleEvaluator{cfg: cfg}
}

// EvaluateSniperRule decides whether price is low enough relative to fmv.
func (s *SniperRuleEvaluator) EvaluateSniperRule(price, fmv float64, shipping model.ShippingOption) SniperDecision {
	if fmv <= 0 || price <= 0 {
		return SniperDecision{IsHit: false, Reason: "Missing data", Priority: PriorityNone}
	}

	shippable := shipping == model.ShippingAvailable
	ratio := s.cfg.PickupRatio
	limitLabel := "Pickup"
	if shippable {
		ratio = s.cfg.ShippingRatio
		limitLabel = "Shipping"
	}
	maxPrice := fmv * ratio

	if price <= maxPrice {
		priority := PriorityMedium
		if shippable {
			priority = PriorityHigh
		}
		return SniperDecision{
			IsHit:    true,
			Reason:   fmt.Sprintf("Price %.0f <= %.0f (%s limit)", price, maxPrice, limitLabel),
			Priority: priority,
		}
	}

	return SniperDecision{
		IsHit:    false,
		Reason:   fmt.Sprintf("Price %.0f > %.0f", price, maxPrice),
		Priority: PriorityNone,
	}
}
