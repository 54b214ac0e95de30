package services

import (
	"context"
	"fmt"
	"time"

	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/ports"

	"github.com/google/uuid"
)

const defaultHistoryLimit = 10

// DelayService produces and manages the append-only delay prediction
// history for vessels.
type DelayService struct {
	Vessels     ports.VesselRepository
	Predictions ports.DelayRepository
	Oracle      ports.Oracle
}

// Predict runs one synchronous oracle prediction and appends it to
// the vessel's history. Oracle failure here is a primary-computation
// failure and propagates to the caller.
func (s *DelayService) Predict(ctx context.Context, vesselID string) (*domain.DelayPrediction, error) {
	vessel, err := s.Vessels.GetVessel(ctx, vesselID)
	if err != nil {
		return nil, fmt.Errorf("predict delay: %w", err)
	}

	enrichment := fetchEnrichment(ctx, s.Oracle, vessel)

	pred, err := s.Oracle.PredictDelay(ctx, vessel, &enrichment)
	if err != nil {
		return nil, fmt.Errorf("predict delay for %q: %w", vesselID, err)
	}

	pred.PredictionID = uuid.NewString()
	pred.VesselID = vesselID
	pred.CreatedAt = time.Now().UTC()
	if pred.RevisedETA.IsZero() {
		pred.RevisedETA = vessel.ETA.Add(time.Duration(pred.PredictedDelayHrs * float64(time.Hour)))
	}

	if err := s.Predictions.Create(ctx, pred); err != nil {
		return nil, fmt.Errorf("predict delay: store prediction for %q: %w", vesselID, err)
	}

	return pred, nil
}

// History returns the vessel's most recent predictions, newest first.
func (s *DelayService) History(ctx context.Context, vesselID string, limit int) ([]*domain.DelayPrediction, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	if _, err := s.Vessels.GetVessel(ctx, vesselID); err != nil {
		return nil, fmt.Errorf("delay history: %w", err)
	}

	preds, err := s.Predictions.ListRecent(ctx, vesselID, limit)
	if err != nil {
		return nil, fmt.Errorf("delay history for %q: %w", vesselID, err)
	}
	return preds, nil
}

// Cleanup prunes the vessel's history down to the keepLast most
// recent predictions and reports how many were removed.
func (s *DelayService) Cleanup(ctx context.Context, vesselID string, keepLast int) (int, error) {
	if keepLast < 0 {
		return 0, &domain.ValidationError{Msg: "keepLast must not be negative"}
	}

	if _, err := s.Vessels.GetVessel(ctx, vesselID); err != nil {
		return 0, fmt.Errorf("delay cleanup: %w", err)
	}

	removed, err := s.Predictions.PruneKeepLast(ctx, vesselID, keepLast)
	if err != nil {
		return 0, fmt.Errorf("delay cleanup for %q: %w", vesselID, err)
	}
	return removed, nil
}
