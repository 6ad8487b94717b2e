package config

import (
	"errors"
	"fmt"
)

// Validate checks that values are internally consistent. Database fields are
// only required when a host is set, so in-memory tooling can skip them.
func (c *Config) Validate() error {
	if c.Database.Host != "" {
		if c.Database.Name == "" {
			return errors.New("database.name is required")
		}
		if c.Database.User == "" {
			return errors.New("database.user is required")
		}
		if c.Database.Port < 1 || c.Database.Port > 65535 {
			return fmt.Errorf("database.port must be between 1 and 65535, got %d", c.Database.Port)
		}
	}

	v := c.Valuation
	for grade, p := range v.ConditionPenalties {
		if p < 0 || p >= 1 {
			return fmt.Errorf("valuation.condition_penalties[%s] must be in [0,1), got %v", grade, p)
		}
	}
	if v.DefaultPenalty < 0 || v.DefaultPenalty >= 1 {
		return fmt.Errorf("valuation.default_penalty must be in [0,1), got %v", v.DefaultPenalty)
	}
	if v.CategoryMinEUR >= v.CategoryMaxEUR {
		return fmt.Errorf("valuation.category_min_eur %v must be below category_max_eur %v",
			v.CategoryMinEUR, v.CategoryMaxEUR)
	}
	if v.ExactMinSamples < 1 {
		return errors.New("valuation.exact_min_samples must be >= 1")
	}
	if v.SimilarMinSamples < 1 {
		return errors.New("valuation.similar_min_samples must be >= 1")
	}
	if v.Depreciation.AppreciationRate <= 0 || v.Depreciation.DepreciationRate <= 0 {
		return errors.New("valuation.depreciation rates must be positive")
	}

	if c.Sniper.ShippingRatio <= 0 || c.Sniper.ShippingRatio > 1 {
		return fmt.Errorf("sniper.shipping_ratio must be in (0,1], got %v", c.Sniper.ShippingRatio)
	}
	if c.Sniper.PickupRatio <= 0 || c.Sniper.PickupRatio > 1 {
		return fmt.Errorf("sniper.pickup_ratio must be in (0,1], got %v", c.Sniper.PickupRatio)
	}

	if c.Hotness.MinHoursAlive <= 0 {
		return errors.New("hotness.min_hours_alive must be positive")
	}

	if c.Salvage.PartOutRatio <= 0 || c.Salvage.PartOutRatio+c.Salvage.PremiumBoost > 1 {
		return errors.New("salvage.part_out_ratio plus premium_boost must stay within (0,1]")
	}

	if c.Sweep.Workers < 1 {
		return errors.New("sweep.workers must be >= 1")
	}
	if c.Sweep.RatePerSec <= 0 {
		return errors.New("sweep.rate_per_sec must be positive")
	}

	return nil
}
