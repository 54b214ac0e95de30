package domain

import "time"

// AIPortToPlantAnalysis is the parsed, validated payload returned by
// the text oracle for a port-to-plant request. The aggregator merges
// it with locally computed vessel metrics; it never reaches storage
// or clients unmerged.
type AIPortToPlantAnalysis struct {
	CostBreakdown               AICostBreakdown
	PlantAllocations            []AIPlantAllocation
	PerformanceMetrics          AIPerformanceMetrics
	RailTransportation          RailTransportation
	RiskAssessment              string
	OptimizationRecommendations []string
	TransitPhase                string
}

// AICostBreakdown carries the oracle-estimated cost components in the
// vessel's accounting currency.
type AICostBreakdown struct {
	TotalRailTransportCost float64
	DemurrageCost          float64
	StorageCost            float64
}

// AIPlantAllocation is the oracle's per-plant delivery guidance,
// merged into the locally computed allocation by plant name.
type AIPlantAllocation struct {
	PlantName             string
	PriorityLevel         string
	EstimatedDeliveryDays int
}

// AIPerformanceMetrics are three 0-100 scores averaged into the
// overall performance score.
type AIPerformanceMetrics struct {
	CostEfficiencyScore float64
	TimelinessScore     float64
	UtilizationScore    float64
}

// RailTransportation summarizes the rail leg of the movement.
type RailTransportation struct {
	RecommendedRakes     int
	TransitTimeDays      float64
	RouteCongestionLevel string
}

// PortToPlantReport is the persisted analysis payload: vessel facts,
// locally computed metrics, and oracle-provided fields merged into
// one self-consistent document. Every numeric field is populated.
type PortToPlantReport struct {
	VesselID                    string
	TotalCargoVolume            float64
	LoadingDaysRequired         int
	RakeUtilizationEfficiency   int
	PlantAllocations            []PlantAllocationReport
	Costs                       CostSummary
	OverallPerformanceScore     int
	LoadingStartDate            time.Time
	LoadingEndDate              time.Time
	RailTransportation          RailTransportation
	RiskAssessment              string
	OptimizationRecommendations []string
	TransitPhase                string
}

// PlantAllocationReport is one plant's share of the cargo with the
// computed shortfall and allocation percentage.
type PlantAllocationReport struct {
	PlantName             string
	RequiredQuantity      float64
	StockAvailable        float64
	ShortfallQuantity     float64
	AllocationPercentage  int
	PriorityLevel         string
	EstimatedDeliveryDays int
}

// CostSummary combines oracle cost estimates with locally computed
// components. Distribution percentages are rounded independently and
// may sum to 99..101; that is accepted behavior, not a defect.
type CostSummary struct {
	RailTransportCost float64
	FringeRailCost    float64
	DemurrageCost     float64
	PortHandlingCost  float64
	StorageCost       float64
	TotalCost         float64
	Distribution      CostDistribution
}

// CostDistribution holds each component's integer share of TotalCost.
type CostDistribution struct {
	RailTransportPct int
	FringeRailPct    int
	DemurragePct     int
	PortHandlingPct  int
	StoragePct       int
}

// ImprovementReport compares a stored baseline against an optimized
// scenario produced by fixed improvement factors.
type ImprovementReport struct {
	Traditional  ScenarioMetrics
	Optimized    ScenarioMetrics
	Improvements ImprovementMetrics
}

// ScenarioMetrics are the headline numbers for one scenario.
type ScenarioMetrics struct {
	TransitTimeDays    float64
	TotalCost          float64
	DemurrageCost      float64
	RakeUtilizationPct float64
	CostPerTonne       float64
}

// ImprovementMetrics quantify the delta between scenarios.
type ImprovementMetrics struct {
	TransitTimeReductionPct float64
	CostSavings             float64
	CostSavingsPct          float64
	DemurrageSavings        float64
	UtilizationGainPct      float64
}
