// Package valuation turns a scraped listing plus sale history into a monetary
// judgment. The engine walks an ordered chain of estimation tiers and returns
// the first success, condition-adjusted. Missing data is a valid outcome
// (nil result, nil error), never a failure.
package valuation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/g1nlyf/bikewerk/internal/analyzer"
	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/history"
	"github.com/g1nlyf/bikewerk/internal/model"
)

// tier pairs an estimator with its failure policy. Analyzer faults degrade to
// the legacy tiers; store faults on the legacy tiers propagate to the caller.
type tier struct {
	est            Estimator
	degradeOnError bool
}

// Engine orchestrates FMV estimation.
type Engine struct {
	tiers    []tier
	adjuster *Adjuster
	store    history.Store
	cfg      config.ValuationConfig
	log      *slog.Logger
}

// NewEngine wires the standard tier chain: analyzer, exact, similar, category.
// A nil analyzer skips the first tier; a nil logger falls back to
// slog.Default().
func NewEngine(store history.Store, an analyzer.Analyzer, cfg config.ValuationConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}

	var tiers []tier
	if an != nil {
		tiers = append(tiers, tier{est: &analyzerTier{analyzer: an, cutoffs: cfg.Confidence}, degradeOnError: true})
	}
	tiers = append(tiers,
		tier{est: &exactTier{store: store, cfg: cfg}},
		tier{est: &similarTier{store: store, cfg: cfg}},
		tier{est: &categoryTier{store: store, cfg: cfg}},
	)

	return &Engine{
		tiers:    tiers,
		adjuster: NewAdjuster(cfg, logger),
		store:    store,
		cfg:      cfg,
		log:      logger,
	}
}

// Adjuster exposes the engine's condition adjuster for standalone use.
func (e *Engine) Adjuster() *Adjuster {
	return e.adjuster
}

// CalculateFMV runs the tier chain for a listing. A nil result with nil error
// means insufficient data; the caller must treat it as "no opinion".
func (e *Engine) CalculateFMV(ctx context.Context, listing model.ListingCandidate) (*ValuationResult, error) {
	if listing.Brand == "" || listing.Model == "" {
		return nil, nil
	}

	e.log.Debug("calculating fmv", "brand", listing.Brand, "model", listing.Model, "year", listing.Year)

	for _, t := range e.tiers {
		est, err := t.est.Estimate(ctx, listing)
		if err != nil {
			if t.degradeOnError {
				e.log.Warn("tier failed, degrading to next",
					"tier", t.est.Name(), "error", err)
				continue
			}
			return nil, fmt.Errorf("%s tier: %w", t.est.Name(), err)
		}
		if est == nil {
			continue
		}

		e.log.Info("fmv estimated",
			"tier", t.est.Name(), "method", est.Method,
			"fmv", est.FMV, "confidence", est.Confidence, "samples", est.SampleSize)
		return e.adjuster.ApplyConditionPenalty(est.FMV, listing.ConditionGrade, est), nil
	}

	e.log.Info("insufficient data for fmv", "brand", listing.Brand, "model", listing.Model)
	return nil, nil
}
