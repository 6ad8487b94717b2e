package decision

import (
	"testing"

	"github.com/g1nlyf/bikewerk/internal/config"
	"github.com/g1nlyf/bikewerk/internal/model"
)

func newSniper() *SniperRuleEvaluator {
	return NewSniperRuleEvaluator(config.Default().Sniper)
}

func TestEvaluateSniperRule_ShippingHit(t *testing.T) {
	// 1600 <= 2000*0.85 = 1700
	d := newSniper().EvaluateSniperRule(1600, 2000, model.ShippingAvailable)

	if !d.IsHit {
		t.Fatalf("expected hit, got %+v", d)
	}
	if d.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %s", d.Priority)
	}
}

func TestEvaluateSniperRule_ShippingMiss(t *testing.T) {
	// 1800 > 1700
	d := newSniper().EvaluateSniperRule(1800, 2000, model.ShippingAvailable)

	if d.IsHit {
		t.Fatalf("expected miss, got %+v", d)
	}
	if d.Priority != PriorityNone {
		t.Errorf("expected none priority, got %s", d.Priority)
	}
}

func TestEvaluateSniperRule_PickupHit(t *testing.T) {
	// 1400 <= 2000*0.75 = 1500
	d := newSniper().EvaluateSniperRule(1400, 2000, model.ShippingPickup)

	if !d.IsHit {
		t.Fatalf("expected hit, got %+v", d)
	}
	if d.Priority != PriorityMedium {
		t.Errorf("expected medium priority for pickup, got %s", d.Priority)
	}
}

func TestEvaluateSniperRule_PickupMiss(t *testing.T) {
	// 1600 > 1500
	d := newSniper().EvaluateSniperRule(1600, 2000, model.ShippingPickup)

	if d.IsHit {
		t.Fatalf("expected miss, got %+v", d)
	}
}

func TestEvaluateSniperRule_ExactBoundaryIsHit(t *testing.T) {
	d := newSniper().EvaluateSniperRule(1700, 2000, model.ShippingAvailable)

	if !d.IsHit {
		t.Errorf("price equal to the limit should hit, got %+v", d)
	}
}

func TestEvaluateSniperRule_MissingData(t *testing.T) {
	cases := []struct {
		name  string
		price float64
		fmv   float64
	}{
		{"zero fmv", 1000, 0},
		{"zero price", 0, 2000},
		{"both zero", 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newSniper().EvaluateSniperRule(tc.price, tc.fmv, model.ShippingAvailable)
			if d.IsHit {
				t.Error("missing data must never hit")
			}
			if d.Reason != "Missing data" {
				t.Errorf("expected missing data reason, got %q", d.Reason)
			}
			if d.Priority != PriorityNone {
				t.Errorf("expected none priority, got %s", d.Priority)
			}
		})
	}
}
