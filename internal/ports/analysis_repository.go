package ports

import (
	"context"
	"vessel-logistics-service/internal/domain"
)

// Port: storage for cached analysis records, keyed by (vessel, kind).
type AnalysisRepository interface {
	// Retrieve the record for a vessel and kind. Returns
	// domain.NotFoundError when no record exists.
	Get(ctx context.Context, vesselID string, kind domain.AnalysisKind) (*domain.AnalysisRecord, error)
	// Insert or replace the record for (rec.VesselID, rec.Kind).
	Put(ctx context.Context, rec *domain.AnalysisRecord) error
	// Remove the record for a vessel and kind. Deleting an absent
	// record is not an error.
	Delete(ctx context.Context, vesselID string, kind domain.AnalysisKind) error
}
