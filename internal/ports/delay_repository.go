package ports

import (
	"context"
	"vessel-logistics-service/internal/domain"
)

// Port: append-only storage for delay prediction history.
type DelayRepository interface {
	// Append one prediction to the vessel's history.
	Create(ctx context.Context, p *domain.DelayPrediction) error
	// Return up to limit predictions for the vessel, newest first.
	ListRecent(ctx context.Context, vesselID string, limit int) ([]*domain.DelayPrediction, error)
	// Delete all but the keep most recent predictions (by creation
	// time) and report how many were removed.
	PruneKeepLast(ctx context.Context, vesselID string, keep int) (int, error)
}
