package decision

import (
	"math"
	"time"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// HotnessScorer ranks listings by arbitrage profit weighted by how fast they
// accumulate views. Zero when no profit exists.
type HotnessScorer struct {
	cfg config.HotnessConfig
	now func() time.Time
}

// NewHotnessScorer builds a scorer from config.
func NewHotnessScorer(cfg config.HotnessConfig) *HotnessScorer {
	return &HotnessScorer{cfg: cfg, now: time.Now}
}

// CalculateHotnessScore returns round(profit * views-per-hour). The minimum
// hours-alive floor keeps just-published listings from blowing up velocity.
func (h *HotnessScorer) CalculateHotnessScore(listing model.ListingCandidate, fmv float64) int {
	if fmv <= 0 || listing.Price <= 0 {
		return 0
	}

	profit := fmv - listing.Price
	if profit <= 0 {
		return 0
	}

	published := listing.PublishDate
	if published.IsZero() {
		published = h.now()
	}

	hoursAlive := h.now().Sub(published).Hours()
	if hoursAlive < h.cfg.MinHoursAlive {
		hoursAlive = h.cfg.MinHoursAlive
	}

	velocity := float64(listing.Views) / hoursAlive
	return int(math.Round(profit * velocity))
}
