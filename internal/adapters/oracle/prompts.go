package oracle

import (
	"fmt"
	"strings"

	"vessel-logistics-service/internal/domain"
)

// Prompts describe the vessel and the exact JSON shape expected back.
// The oracle frequently wraps the object in prose anyway, which is
// why callers run extractJSONObject over the output.

func vesselFacts(v *domain.Vessel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Vessel %s (%s), capacity %.0f t, ETA %s, load port %s.\n",
		v.VesselID, v.Name, v.Capacity, v.ETA.Format("2006-01-02"), v.LoadPort)
	fmt.Fprintf(&b, "Total cargo %.0f t across %d parcels. Rail: %d rakes of %.0f t, loading %.0f t/day.\n",
		v.TotalCargoVolume(), len(v.Parcels), v.Rail.NumberOfRakesRequired,
		v.Rail.RakeCapacity, v.Rail.LoadingTimePerDay)
	for _, p := range v.Parcels {
		for _, a := range p.Allocations {
			fmt.Fprintf(&b, "Plant %s requires %.0f t (%s), stock available %.0f t.\n",
				a.PlantName, a.RequiredQuantity, p.MaterialType, a.PlantStockAvailability)
		}
	}
	return b.String()
}

func portToPlantPrompt(v *domain.Vessel) string {
	return vesselFacts(v) + `
Analyze the port-to-plant movement for this vessel. Respond with a single JSON object:
{"costBreakdown":{"totalRailTransportCost":0,"demurrageCost":0,"storageCost":0},
"plantDistributionAnalysis":{"plantAllocations":[{"plantName":"","priorityLevel":"Low|Medium|High","estimatedDeliveryDays":0}]},
"performanceMetrics":{"costEfficiencyScore":0,"timelinessScore":0,"utilizationScore":0},
"railTransportationAnalysis":{"recommendedRakes":0,"transitTimeDays":0,"routeCongestionLevel":"Low|Medium|High"},
"riskAssessment":"","optimizationRecommendations":[""],
"timelineAnalysis":{"transitPhase":""}}
Scores are 0-100. Costs are in INR.`
}

func optimizationPrompt(v *domain.Vessel) string {
	return vesselFacts(v) + `
Estimate the current (unoptimized) logistics baseline for this vessel. Respond with a single JSON object:
{"baseline":{"transitTimeDays":0,"totalCost":0,"demurrageCost":0,"rakeUtilizationPct":0},
"recommendations":[""]}
Costs are in INR; rakeUtilizationPct may exceed 100.`
}

func delayPrompt(v *domain.Vessel, e *domain.VoyageEnrichment) string {
	return vesselFacts(v) + fmt.Sprintf(
		"Current conditions: weather %q (wind %.0f kt, waves %.1f m); port congestion %s (%d ships queued, avg wait %.0f h); vessel speed %.1f kt, %.0f nm to port.\n",
		e.Weather.Summary, e.Weather.WindSpeedKts, e.Weather.WaveHeightM,
		e.Congestion.Level, e.Congestion.QueuedShips, e.Congestion.AvgWaitHours,
		e.Tracking.SpeedKts, e.Tracking.DistanceToPortNm,
	) + `
Predict the arrival delay. Respond with a single JSON object:
{"predictedDelayHours":0,"confidence":0,"riskLevel":"Low|Medium|High","factors":[""]}`
}

func enrichmentPrompt(v *domain.Vessel) string {
	return vesselFacts(v) + `
Synthesize plausible current voyage conditions. Respond with a single JSON object:
{"weather":{"summary":"","windSpeedKts":0,"waveHeightM":0},
"portCongestion":{"level":"Low|Medium|High","queuedShips":0,"avgWaitHours":0},
"tracking":{"latitude":0,"longitude":0,"speedKts":0,"distanceToPortNm":0}}`
}
