package services

import (
	"math"
	"vessel-logistics-service/internal/domain"
)

// Fixed improvement factors applied to a stored baseline. The numbers
// are assumptions, not measurements: the optimized scenario models a
// 15% faster transit, 12% lower total cost, and 40% lower demurrage
// with an 18% relative gain in rake utilization.
const (
	transitReductionFactor  = 0.15
	costReductionFactor     = 0.12
	demurrageReductionFactr = 0.40
	utilizationGainFactor   = 0.18
)

// BuildImprovementReport derives the optimized scenario and the
// improvement deltas from a baseline. Deterministic given its inputs;
// utilization is left unclamped like every other percentage in the
// computation layer.
func BuildImprovementReport(baseline domain.ScenarioMetrics, cargoVolume float64) (*domain.ImprovementReport, error) {
	if cargoVolume <= 0 {
		return nil, &domain.ValidationError{Msg: "cargo volume must be positive"}
	}
	if baseline.TotalCost <= 0 {
		return nil, &domain.ValidationError{Msg: "baseline total cost must be positive"}
	}

	traditional := baseline
	traditional.CostPerTonne = round2(traditional.TotalCost / cargoVolume)

	optimized := domain.ScenarioMetrics{
		TransitTimeDays:    round2(baseline.TransitTimeDays * (1 - transitReductionFactor)),
		TotalCost:          round2(baseline.TotalCost * (1 - costReductionFactor)),
		DemurrageCost:      round2(baseline.DemurrageCost * (1 - demurrageReductionFactr)),
		RakeUtilizationPct: round2(baseline.RakeUtilizationPct * (1 + utilizationGainFactor)),
	}
	optimized.CostPerTonne = round2(optimized.TotalCost / cargoVolume)

	improvements := domain.ImprovementMetrics{
		CostSavings:        round2(traditional.TotalCost - optimized.TotalCost),
		DemurrageSavings:   round2(traditional.DemurrageCost - optimized.DemurrageCost),
		UtilizationGainPct: round2(optimized.RakeUtilizationPct - traditional.RakeUtilizationPct),
	}
	if traditional.TransitTimeDays > 0 {
		improvements.TransitTimeReductionPct = round2(
			(traditional.TransitTimeDays - optimized.TransitTimeDays) / traditional.TransitTimeDays * 100,
		)
	}
	improvements.CostSavingsPct = round2(improvements.CostSavings / traditional.TotalCost * 100)

	return &domain.ImprovementReport{
		Traditional:  traditional,
		Optimized:    optimized,
		Improvements: improvements,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
