// Command valuate prices a single bike from the sale history: FMV, sniper
// decision, hotness and salvage signals, printed as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/g1nlyf/bikewerk/internal/analyzer"
	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/decision"
	"github.com/g1nlyf/bikewerk/internal/history"
	"github.com/g1nlyf/bikewerk/internal/model"
	"github.com/g1nlyf/bikewerk/internal/valuation"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to YAML config (defaults apply when empty)")
		brand      = flag.String("brand", "", "bike brand (required)")
		modelName  = flag.String("model", "", "bike model (required)")
		year       = flag.Int("year", 0, "model year")
		grade      = flag.String("grade", "B", "condition grade A-D")
		price      = flag.Float64("price", 0, "asking price EUR")
		shipping   = flag.String("shipping", "pickup", "shipping option: available or pickup")
		frameSize  = flag.String("size", "", "frame size hint")
		material   = flag.String("material", "", "frame material hint")
		category   = flag.String("category", "", "category for the fallback tier")
		debug      = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *brand == "" || *modelName == "" {
		fmt.Fprintln(os.Stderr, "usage: valuate -brand <brand> -model <model> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file, using system environment")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Sweep.Timeout)
	defer cancel()

	pool, err := history.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	store := history.NewPostgresStore(pool)

	an := analyzer.New(store, cfg.Analyzer, logger)
	engine := valuation.NewEngine(store, an, cfg.Valuation, logger)

	listing := model.ListingCandidate{
		Brand:          *brand,
		Model:          *modelName,
		Year:           *year,
		FrameSize:      *frameSize,
		FrameMaterial:  *material,
		Category:       *category,
		Price:          *price,
		ConditionGrade: model.ConditionGrade(*grade),
		Shipping:       model.ShippingOption(*shipping),
		PublishDate:    time.Now(),
	}

	result, err := engine.CalculateFMV(ctx, listing)
	if err != nil {
		logger.Error("valuation failed", "error", err)
		os.Exit(1)
	}
	if result == nil {
		logger.Info("insufficient data, no price opinion")
		fmt.Println("null")
		return
	}

	out := struct {
		Valuation *valuation.ValuationResult `json:"valuation"`
		Sniper    *decision.SniperDecision   `json:"sniper,omitempty"`
		Hotness   int                        `json:"hotness,omitempty"`
		Salvage   *decision.SalvageEstimate  `json:"salvage,omitempty"`
		Band      decision.MarketBand        `json:"band,omitempty"`
	}{Valuation: result}

	if *price > 0 {
		sniper := decision.NewSniperRuleEvaluator(cfg.Sniper).
			EvaluateSniperRule(*price, result.FinalPrice, listing.Shipping)
		salvage := decision.NewSalvageArbitrageEstimator(cfg.Salvage).
			CalculateSalvageValue(listing, result.FinalPrice)
		out.Sniper = &sniper
		out.Hotness = decision.NewHotnessScorer(cfg.Hotness).
			CalculateHotnessScore(listing, result.FinalPrice)
		out.Salvage = &salvage
		out.Band = decision.CompareToMarket(*price, result.FinalPrice)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Error("encode output", "error", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadAndValidate(path)
}
