// Package sweep runs the valuation engine and decision rules over a batch of
// listings concurrently and ranks the outcome for the acquisition pipeline.
package sweep

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/decision"
	"github.com/g1nlyf/bikewerk/internal/model"
	"github.com/g1nlyf/bikewerk/internal/valuation"
)

// Result carries every decision signal for one listing. The ID travels with
// the signal into the downstream order pipeline.
type Result struct {
	ID        uuid.UUID                  `json:"id"`
	Listing   model.ListingCandidate     `json:"listing"`
	Valuation *valuation.ValuationResult `json:"valuation,omitempty"`
	Sniper    decision.SniperDecision    `json:"sniper"`
	Hotness   int                        `json:"hotness"`
	Salvage   decision.SalvageEstimate   `json:"salvage"`
	Band      decision.MarketBand        `json:"band"`
	Error     string                     `json:"error,omitempty"`
}

// Report is one full sweep run, results ranked by hotness.
type Report struct {
	ID         uuid.UUID `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Total      int       `json:"total"`
	Valued     int       `json:"valued"`
	Hits       int       `json:"hits"`
	Gems       int       `json:"gems"`
	Errors     int       `json:"errors"`
	Results    []Result  `json:"results"`
}

// Sweeper evaluates listings with a bounded worker pool. Store queries are
// rate limited so a sweep cannot starve the live pipeline.
type Sweeper struct {
	engine  *valuation.Engine
	sniper  *decision.SniperRuleEvaluator
	hotness *decision.HotnessScorer
	salvage *decision.SalvageArbitrageEstimator
	workers int
	limiter *rate.Limiter
	log     *slog.Logger
}

// New builds a Sweeper. A nil logger falls back to slog.Default().
func New(engine *valuation.Engine, cfg config.Config, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		engine:  engine,
		sniper:  decision.NewSniperRuleEvaluator(cfg.Sniper),
		hotness: decision.NewHotnessScorer(cfg.Hotness),
		salvage: decision.NewSalvageArbitrageEstimator(cfg.Salvage),
		workers: cfg.Sweep.Workers,
		limiter: rate.NewLimiter(rate.Limit(cfg.Sweep.RatePerSec), cfg.Sweep.Workers),
		log:     logger,
	}
}

// Run evaluates every listing. Listings are independent, so per-listing
// failures are recorded on the result and never abort the sweep.
func (s *Sweeper) Run(ctx context.Context, listings []model.ListingCandidate) (*Report, error) {
	report := &Report{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		Total:     len(listings),
	}

	jobs := make(chan model.ListingCandidate)
	out := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for listing := range jobs {
				out <- s.evaluate(ctx, listing)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, l := range listings {
			select {
			case jobs <- l:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	for r := range out {
		if r.Error != "" {
			report.Errors++
		}
		if r.Valuation != nil {
			report.Valued++
		}
		if r.Sniper.IsHit {
			report.Hits++
		}
		if r.Salvage.IsGem {
			report.Gems++
		}
		report.Results = append(report.Results, r)
	}

	sort.Slice(report.Results, func(i, j int) bool {
		return report.Results[i].Hotness > report.Results[j].Hotness
	})

	report.FinishedAt = time.Now()
	s.log.Info("sweep finished",
		"sweep_id", report.ID, "total", report.Total, "valued", report.Valued,
		"hits", report.Hits, "gems", report.Gems, "errors", report.Errors,
		"elapsed", report.FinishedAt.Sub(report.StartedAt))
	return report, ctx.Err()
}

func (s *Sweeper) evaluate(ctx context.Context, listing model.ListingCandidate) Result {
	result := Result{
		ID:      uuid.New(),
		Listing: listing,
		Sniper:  decision.SniperDecision{Reason: "Missing data", Priority: decision.PriorityNone},
		Band:    decision.BandUnknown,
	}

	if err := s.limiter.Wait(ctx); err != nil {
		result.Error = err.Error()
		return result
	}

	val, err := s.engine.CalculateFMV(ctx, listing)
	if err != nil {
		s.log.Warn("valuation failed", "url", listing.URL, "error", err)
		result.Error = err.Error()
		return result
	}
	if val == nil {
		// No opinion: the listing simply drops out of every decision.
		return result
	}

	result.Valuation = val
	result.Sniper = s.sniper.EvaluateSniperRule(listing.Price, val.FinalPrice, listing.Shipping)
	result.Hotness = s.hotness.CalculateHotnessScore(listing, val.FinalPrice)
	result.Salvage = s.salvage.CalculateSalvageValue(listing, val.FinalPrice)
	result.Band = decision.CompareToMarket(listing.Price, val.FinalPrice)
	return result
}
