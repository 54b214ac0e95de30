package services

import (
	"math"
	"vessel-logistics-service/internal/domain"
)

// BuildPortToPlantReport merges a vessel's raw attributes with the
// oracle-provided analysis into one self-consistent report.
//
// The function is pure: all I/O happens in the caller. Percentages
// are rounded independently, so the cost distribution may sum to
// 99..101 and rake utilization is deliberately left unclamped (it can
// legitimately exceed 100% when more rakes are scheduled than
// strictly needed). Display-layer clamping is kept out of this layer.
func BuildPortToPlantReport(v *domain.Vessel, ai *domain.AIPortToPlantAnalysis) (*domain.PortToPlantReport, error) {
	if v == nil {
		return nil, &domain.ValidationError{Msg: "vessel must be non-nil"}
	}
	if err := validateAnalysis(ai); err != nil {
		return nil, err
	}

	volume := v.TotalCargoVolume()
	if volume <= 0 {
		return nil, &domain.ValidationError{Msg: "total cargo volume must be positive"}
	}
	if v.Rail.LoadingTimePerDay <= 0 {
		return nil, &domain.ValidationError{Msg: "loading time per day must be positive"}
	}
	rakeDenom := v.Rail.RakeCapacity * float64(v.Rail.NumberOfRakesRequired)
	if rakeDenom <= 0 {
		return nil, &domain.ValidationError{Msg: "rake capacity and rake count must be positive"}
	}

	loadingDays := int(math.Ceil(volume / v.Rail.LoadingTimePerDay))
	rakeUtilization := roundPct(volume / rakeDenom)

	allocations := mergePlantAllocations(aggregateAllocations(v), ai.PlantAllocations, volume)

	costs, err := buildCostSummary(v, ai, volume)
	if err != nil {
		return nil, err
	}

	pm := ai.PerformanceMetrics
	score := int(math.Round((pm.CostEfficiencyScore + pm.TimelinessScore + pm.UtilizationScore) / 3))

	return &domain.PortToPlantReport{
		VesselID:                    v.VesselID,
		TotalCargoVolume:            volume,
		LoadingDaysRequired:         loadingDays,
		RakeUtilizationEfficiency:   rakeUtilization,
		PlantAllocations:            allocations,
		Costs:                       costs,
		OverallPerformanceScore:     score,
		LoadingStartDate:            v.ETA,
		LoadingEndDate:              v.ETA.AddDate(0, 0, loadingDays),
		RailTransportation:          ai.RailTransportation,
		RiskAssessment:              ai.RiskAssessment,
		OptimizationRecommendations: ai.OptimizationRecommendations,
		TransitPhase:                ai.TransitPhase,
	}, nil
}

// validateAnalysis rejects oracle payloads missing the nested paths
// the merge depends on.
func validateAnalysis(ai *domain.AIPortToPlantAnalysis) error {
	if ai == nil {
		return &domain.MissingFieldError{Path: "analysis"}
	}
	if ai.TransitPhase == "" {
		return &domain.MissingFieldError{Path: "timelineAnalysis.transitPhase"}
	}
	if ai.RiskAssessment == "" {
		return &domain.MissingFieldError{Path: "riskAssessment"}
	}
	cb := ai.CostBreakdown
	if cb.TotalRailTransportCost < 0 || cb.DemurrageCost < 0 || cb.StorageCost < 0 {
		return &domain.MissingFieldError{Path: "costBreakdown"}
	}
	return nil
}

// aggregateAllocations flattens parcel allocations into one entry per
// plant, summing quantities and preserving first-seen order.
func aggregateAllocations(v *domain.Vessel) []domain.PlantAllocation {
	index := make(map[string]int)
	out := make([]domain.PlantAllocation, 0, 4)

	for _, parcel := range v.Parcels {
		for _, a := range parcel.Allocations {
			if i, ok := index[a.PlantName]; ok {
				out[i].RequiredQuantity += a.RequiredQuantity
				if a.PlantStockAvailability > out[i].PlantStockAvailability {
					out[i].PlantStockAvailability = a.PlantStockAvailability
				}
				continue
			}
			index[a.PlantName] = len(out)
			out = append(out, a)
		}
	}

	return out
}

// mergePlantAllocations joins computed allocations with the oracle's
// per-plant guidance: exact plant-name match first, positional index
// second, fixed defaults last.
func mergePlantAllocations(
	local []domain.PlantAllocation,
	ai []domain.AIPlantAllocation,
	volume float64,
) []domain.PlantAllocationReport {
	byName := make(map[string]domain.AIPlantAllocation, len(ai))
	for _, a := range ai {
		byName[a.PlantName] = a
	}

	out := make([]domain.PlantAllocationReport, 0, len(local))
	for i, a := range local {
		rep := domain.PlantAllocationReport{
			PlantName:             a.PlantName,
			RequiredQuantity:      a.RequiredQuantity,
			StockAvailable:        a.PlantStockAvailability,
			ShortfallQuantity:     math.Max(0, a.RequiredQuantity-a.PlantStockAvailability),
			AllocationPercentage:  roundPct(a.RequiredQuantity / volume),
			PriorityLevel:         "Medium",
			EstimatedDeliveryDays: 7,
		}

		if hit, ok := byName[a.PlantName]; ok {
			applyAIAllocation(&rep, hit)
		} else if i < len(ai) {
			applyAIAllocation(&rep, ai[i])
		}

		out = append(out, rep)
	}

	return out
}

func applyAIAllocation(rep *domain.PlantAllocationReport, ai domain.AIPlantAllocation) {
	if ai.PriorityLevel != "" {
		rep.PriorityLevel = ai.PriorityLevel
	}
	if ai.EstimatedDeliveryDays > 0 {
		rep.EstimatedDeliveryDays = ai.EstimatedDeliveryDays
	}
}

// buildCostSummary combines oracle cost estimates with the locally
// computed fringe-rail and port-handling components.
func buildCostSummary(
	v *domain.Vessel,
	ai *domain.AIPortToPlantAnalysis,
	volume float64,
) (domain.CostSummary, error) {
	rail := ai.CostBreakdown.TotalRailTransportCost
	fringe := v.Costs.FringeRailRate * volume
	demurrage := ai.CostBreakdown.DemurrageCost
	handling := v.Costs.PortHandlingRate * volume
	storage := ai.CostBreakdown.StorageCost

	total := rail + fringe + demurrage + handling + storage
	if total <= 0 {
		return domain.CostSummary{}, &domain.ValidationError{Msg: "total cost must be positive"}
	}

	return domain.CostSummary{
		RailTransportCost: rail,
		FringeRailCost:    fringe,
		DemurrageCost:     demurrage,
		PortHandlingCost:  handling,
		StorageCost:       storage,
		TotalCost:         total,
		Distribution: domain.CostDistribution{
			RailTransportPct: roundPct(rail / total),
			FringeRailPct:    roundPct(fringe / total),
			DemurragePct:     roundPct(demurrage / total),
			PortHandlingPct:  roundPct(handling / total),
			StoragePct:       roundPct(storage / total),
		},
	}, nil
}

// roundPct converts a fraction to the nearest integer percentage.
func roundPct(fraction float64) int {
	return int(math.Round(fraction * 100))
}
