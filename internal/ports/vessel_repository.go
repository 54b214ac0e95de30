package ports

import (
	"context"
	"vessel-logistics-service/internal/domain"
)

// Port: a boundary for retrieving Vessel aggregates from a data source.
type VesselRepository interface {
	// Retrieve all vessels known to the system.
	ListVessels(ctx context.Context) ([]*domain.Vessel, error)
	// Retrieve a single vessel by id. Returns domain.NotFoundError
	// when the vessel does not exist.
	GetVessel(ctx context.Context, vesselID string) (*domain.Vessel, error)
}
