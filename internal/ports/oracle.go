package ports

import (
	"context"
	"vessel-logistics-service/internal/domain"
)

// Port: the generative text oracle, treated as an opaque collaborator
// that turns a structured request into a structured (already parsed
// and clamped) payload. Any call may fail, time out, or have returned
// malformed text; adapters surface all of those as errors.
type Oracle interface {
	// Identify the underlying model for computation metadata.
	Model() string
	// Produce the AI-side fields of a port-to-plant analysis.
	PortToPlantAnalysis(ctx context.Context, v *domain.Vessel) (*domain.AIPortToPlantAnalysis, error)
	// Estimate the vessel's current logistics baseline for the
	// optimization comparison.
	OptimizationBaseline(ctx context.Context, v *domain.Vessel) (*domain.OptimizationBaseline, error)
	// Predict the vessel's arrival delay given the enrichment context.
	PredictDelay(ctx context.Context, v *domain.Vessel, e *domain.VoyageEnrichment) (*domain.DelayPrediction, error)
	// Synthesize weather/congestion/tracking context for the voyage.
	VoyageEnrichment(ctx context.Context, v *domain.Vessel) (*domain.VoyageEnrichment, error)
}
