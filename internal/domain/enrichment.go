package domain

// VoyageEnrichment bundles the synthesized "real-time" context for a
// voyage. When the oracle fails, callers substitute fixed fallback
// values and set Degraded; enrichment failures never fail a request.
type VoyageEnrichment struct {
	Weather    WeatherConditions
	Congestion PortCongestion
	Tracking   VesselTracking
	Degraded   bool
}

// WeatherConditions along the remaining route.
type WeatherConditions struct {
	Summary      string
	WindSpeedKts float64
	WaveHeightM  float64
}

// PortCongestion at the discharge port.
type PortCongestion struct {
	Level        string
	QueuedShips  int
	AvgWaitHours float64
}

// VesselTracking is the synthesized current position and progress.
type VesselTracking struct {
	Latitude         float64
	Longitude        float64
	SpeedKts         float64
	DistanceToPortNm float64
}

// OptimizationBaseline is the oracle's estimate of the vessel's
// current ("traditional") logistics numbers, used as the input to the
// improvement builders.
type OptimizationBaseline struct {
	Metrics         ScenarioMetrics
	Recommendations []string
}

// OptimizationReport is the persisted optimization payload.
type OptimizationReport struct {
	VesselID        string
	Voyage          VoyageEnrichment
	Comparison      ImprovementReport
	Recommendations []string
}
