package services

import (
	"context"
	"log"

	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/ports"
)

// fetchEnrichment asks the oracle for voyage context and degrades to
// fixed defaults on any failure. Enrichment is non-critical: it never
// fails the surrounding request.
func fetchEnrichment(ctx context.Context, oracle ports.Oracle, v *domain.Vessel) domain.VoyageEnrichment {
	e, err := oracle.VoyageEnrichment(ctx, v)
	if err != nil {
		log.Printf("voyage enrichment degraded: vessel=%s err=%v", v.VesselID, err)
		return fallbackEnrichment()
	}
	return *e
}

// fallbackEnrichment is the hardcoded payload used when the oracle
// cannot supply voyage context.
func fallbackEnrichment() domain.VoyageEnrichment {
	return domain.VoyageEnrichment{
		Weather: domain.WeatherConditions{
			Summary:      "Moderate seas, no significant weather systems",
			WindSpeedKts: 12,
			WaveHeightM:  1.5,
		},
		Congestion: domain.PortCongestion{
			Level:        "Medium",
			QueuedShips:  4,
			AvgWaitHours: 18,
		},
		Tracking: domain.VesselTracking{
			SpeedKts:         11.5,
			DistanceToPortNm: 250,
		},
		Degraded: true,
	}
}
