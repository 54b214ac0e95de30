package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/ports"
)

// PortToPlantService is the synchronous cache-or-create variant: the
// first request for a vessel computes and stores the report inline,
// later requests return the cached record.
type PortToPlantService struct {
	Vessels  ports.VesselRepository
	Analyses ports.AnalysisRepository
	Oracle   ports.Oracle
}

// Get returns the cached completed report for the vessel or computes
// a fresh one. Stale computing or failed leftovers are recomputed.
func (s *PortToPlantService) Get(ctx context.Context, vesselID string) (*domain.AnalysisRecord, error) {
	rec, err := s.Analyses.Get(ctx, vesselID, domain.AnalysisKindPortToPlant)
	if err == nil && rec.Status == domain.AnalysisCompleted {
		return rec, nil
	}
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("port-to-plant: load record for %q: %w", vesselID, err)
	}

	return s.compute(ctx, vesselID)
}

// Regenerate discards any cached record and computes a fresh report.
func (s *PortToPlantService) Regenerate(ctx context.Context, vesselID string) (*domain.AnalysisRecord, error) {
	if err := s.Analyses.Delete(ctx, vesselID, domain.AnalysisKindPortToPlant); err != nil {
		return nil, fmt.Errorf("port-to-plant: delete record for %q: %w", vesselID, err)
	}
	return s.compute(ctx, vesselID)
}

// compute runs the oracle and aggregator inline and persists the
// outcome. Primary-analysis failures are stored as a failed record
// and returned to the caller; only unknown vessels and storage
// problems surface as errors.
func (s *PortToPlantService) compute(ctx context.Context, vesselID string) (*domain.AnalysisRecord, error) {
	vessel, err := s.Vessels.GetVessel(ctx, vesselID)
	if err != nil {
		return nil, fmt.Errorf("port-to-plant: %w", err)
	}

	now := time.Now().UTC()
	rec := &domain.AnalysisRecord{
		VesselID: vesselID,
		Kind:     domain.AnalysisKindPortToPlant,
		Metadata: domain.ComputationMetadata{
			GeneratedAt:   now,
			LastUpdatedAt: now,
			OracleModel:   s.Oracle.Model(),
		},
	}

	report, err := s.buildReport(ctx, vessel)
	if err != nil {
		log.Printf("port-to-plant analysis failed: vessel=%s err=%v", vesselID, err)
		rec.Status = domain.AnalysisFailed
		rec.ErrorMessage = err.Error()
	} else {
		payload, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("port-to-plant: marshal report for %q: %w", vesselID, err)
		}
		rec.Status = domain.AnalysisCompleted
		rec.Payload = payload
	}

	if err := s.Analyses.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("port-to-plant: persist record for %q: %w", vesselID, err)
	}

	return rec, nil
}

func (s *PortToPlantService) buildReport(ctx context.Context, vessel *domain.Vessel) (*domain.PortToPlantReport, error) {
	ai, err := s.Oracle.PortToPlantAnalysis(ctx, vessel)
	if err != nil {
		return nil, fmt.Errorf("oracle analysis: %w", err)
	}
	return BuildPortToPlantReport(vessel, ai)
}
