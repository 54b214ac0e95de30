package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/ports"
)

// NewOptimizationCoordinator wires the async coordinator for the
// optimization analysis kind.
func NewOptimizationCoordinator(
	vessels ports.VesselRepository,
	analyses ports.AnalysisRepository,
	registry ports.InflightRegistry,
	oracle ports.Oracle,
	staleAfter time.Duration,
) *Coordinator {
	return &Coordinator{
		Kind:       domain.AnalysisKindOptimization,
		Vessels:    vessels,
		Analyses:   analyses,
		Registry:   registry,
		Compute:    OptimizationCompute(oracle),
		StaleAfter: staleAfter,
	}
}

// OptimizationCompute builds the full optimization payload: voyage
// enrichment (degradable), an oracle baseline (failure propagates and
// marks the record failed), and the fixed-factor improvement
// comparison.
func OptimizationCompute(oracle ports.Oracle) ComputeFunc {
	return func(ctx context.Context, v *domain.Vessel) (*ComputeResult, error) {
		enrichment := fetchEnrichment(ctx, oracle, v)

		baseline, err := oracle.OptimizationBaseline(ctx, v)
		if err != nil {
			return nil, fmt.Errorf("optimization baseline for %q: %w", v.VesselID, err)
		}

		comparison, err := BuildImprovementReport(baseline.Metrics, v.TotalCargoVolume())
		if err != nil {
			return nil, fmt.Errorf("improvement report for %q: %w", v.VesselID, err)
		}

		report := domain.OptimizationReport{
			VesselID:        v.VesselID,
			Voyage:          enrichment,
			Comparison:      *comparison,
			Recommendations: baseline.Recommendations,
		}

		payload, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("marshal optimization report for %q: %w", v.VesselID, err)
		}

		return &ComputeResult{
			Payload:     payload,
			Degraded:    enrichment.Degraded,
			OracleModel: oracle.Model(),
		}, nil
	}
}
