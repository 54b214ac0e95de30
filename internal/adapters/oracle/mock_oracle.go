package oracle

import (
	"context"
	"sync/atomic"

	"vessel-logistics-service/internal/domain"
)

// MockOracle is a deterministic Oracle for tests. Each method returns
// the configured value or a sensible fixture, and per-method call
// counters let tests assert how often the oracle was consulted.
type MockOracle struct {
	Analysis   *domain.AIPortToPlantAnalysis
	Baseline   *domain.OptimizationBaseline
	Prediction *domain.DelayPrediction
	Enrichment *domain.VoyageEnrichment

	AnalysisErr   error
	BaselineErr   error
	PredictionErr error
	EnrichmentErr error

	AnalysisCalls   atomic.Int64
	BaselineCalls   atomic.Int64
	PredictionCalls atomic.Int64
	EnrichmentCalls atomic.Int64
}

func (m *MockOracle) Model() string { return "mock-oracle" }

func (m *MockOracle) PortToPlantAnalysis(_ context.Context, _ *domain.Vessel) (*domain.AIPortToPlantAnalysis, error) {
	m.AnalysisCalls.Add(1)
	if m.AnalysisErr != nil {
		return nil, m.AnalysisErr
	}
	if m.Analysis != nil {
		return m.Analysis, nil
	}
	return &domain.AIPortToPlantAnalysis{
		CostBreakdown: domain.AICostBreakdown{
			TotalRailTransportCost: 8_000_000,
			DemurrageCost:          400_000,
			StorageCost:            250_000,
		},
		PerformanceMetrics: domain.AIPerformanceMetrics{
			CostEfficiencyScore: 70, TimelinessScore: 80, UtilizationScore: 75,
		},
		RailTransportation: domain.RailTransportation{
			RecommendedRakes: 3, TransitTimeDays: 4, RouteCongestionLevel: "Medium",
		},
		RiskAssessment: "Moderate risk",
		OptimizationRecommendations: []string{
			"Pre-book rakes for the discharge window",
		},
		TransitPhase: "In Transit",
	}, nil
}

func (m *MockOracle) OptimizationBaseline(_ context.Context, _ *domain.Vessel) (*domain.OptimizationBaseline, error) {
	m.BaselineCalls.Add(1)
	if m.BaselineErr != nil {
		return nil, m.BaselineErr
	}
	if m.Baseline != nil {
		return m.Baseline, nil
	}
	return &domain.OptimizationBaseline{
		Metrics: domain.ScenarioMetrics{
			TransitTimeDays:    6,
			TotalCost:          10_000_000,
			DemurrageCost:      500_000,
			RakeUtilizationPct: 80,
		},
		Recommendations: []string{"Negotiate extended free time"},
	}, nil
}

func (m *MockOracle) PredictDelay(_ context.Context, _ *domain.Vessel, _ *domain.VoyageEnrichment) (*domain.DelayPrediction, error) {
	m.PredictionCalls.Add(1)
	if m.PredictionErr != nil {
		return nil, m.PredictionErr
	}
	if m.Prediction != nil {
		p := *m.Prediction
		return &p, nil
	}
	return &domain.DelayPrediction{
		PredictedDelayHrs: 18,
		Confidence:        80,
		RiskLevel:         "Medium",
		Factors:           []string{"Port congestion at discharge port"},
	}, nil
}

func (m *MockOracle) VoyageEnrichment(_ context.Context, _ *domain.Vessel) (*domain.VoyageEnrichment, error) {
	m.EnrichmentCalls.Add(1)
	if m.EnrichmentErr != nil {
		return nil, m.EnrichmentErr
	}
	if m.Enrichment != nil {
		return m.Enrichment, nil
	}
	return &domain.VoyageEnrichment{
		Weather:    domain.WeatherConditions{Summary: "Calm seas", WindSpeedKts: 8, WaveHeightM: 0.8},
		Congestion: domain.PortCongestion{Level: "Low", QueuedShips: 2, AvgWaitHours: 6},
		Tracking:   domain.VesselTracking{Latitude: 17.7, Longitude: 83.3, SpeedKts: 12.5, DistanceToPortNm: 180},
	}, nil
}
