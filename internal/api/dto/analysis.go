package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"vessel-logistics-service/internal/domain"
)

type AnalysisResponse struct {
	VesselID      string    `json:"vessel_id"`
	Kind          string    `json:"kind"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	GeneratedAt   time.Time `json:"generated_at"`
	LastUpdatedAt time.Time `json:"last_updated_at"`
	Degraded      bool      `json:"degraded"`
	OracleModel   string    `json:"oracle_model,omitempty"`
	Report        any       `json:"report,omitempty"`
}

// NewAnalysisResponse maps a stored record to its response shape,
// parsing the payload into the kind's typed report for completed
// records.
func NewAnalysisResponse(rec *domain.AnalysisRecord) (AnalysisResponse, error) {
	out := AnalysisResponse{
		VesselID:      rec.VesselID,
		Kind:          string(rec.Kind),
		Status:        string(rec.Status),
		Error:         rec.ErrorMessage,
		GeneratedAt:   rec.Metadata.GeneratedAt,
		LastUpdatedAt: rec.Metadata.LastUpdatedAt,
		Degraded:      rec.Metadata.Degraded,
		OracleModel:   rec.Metadata.OracleModel,
	}

	if rec.Status != domain.AnalysisCompleted || len(rec.Payload) == 0 {
		return out, nil
	}

	switch rec.Kind {
	case domain.AnalysisKindPortToPlant:
		var report domain.PortToPlantReport
		if err := json.Unmarshal(rec.Payload, &report); err != nil {
			return out, fmt.Errorf("parse port-to-plant payload for %q: %w", rec.VesselID, err)
		}
		out.Report = newPortToPlantReport(&report)
	case domain.AnalysisKindOptimization:
		var report domain.OptimizationReport
		if err := json.Unmarshal(rec.Payload, &report); err != nil {
			return out, fmt.Errorf("parse optimization payload for %q: %w", rec.VesselID, err)
		}
		out.Report = newOptimizationReport(&report)
	default:
		out.Report = json.RawMessage(rec.Payload)
	}

	return out, nil
}

type PlantAllocationReport struct {
	PlantName             string  `json:"plant_name"`
	RequiredQuantity      float64 `json:"required_quantity"`
	StockAvailable        float64 `json:"stock_available"`
	ShortfallQuantity     float64 `json:"shortfall_quantity"`
	AllocationPercentage  int     `json:"allocation_percentage"`
	PriorityLevel         string  `json:"priority_level"`
	EstimatedDeliveryDays int     `json:"estimated_delivery_days"`
}

type CostDistribution struct {
	RailTransportPct int `json:"rail_transport_pct"`
	FringeRailPct    int `json:"fringe_rail_pct"`
	DemurragePct     int `json:"demurrage_pct"`
	PortHandlingPct  int `json:"port_handling_pct"`
	StoragePct       int `json:"storage_pct"`
}

type CostSummary struct {
	RailTransportCost float64          `json:"rail_transport_cost"`
	FringeRailCost    float64          `json:"fringe_rail_cost"`
	DemurrageCost     float64          `json:"demurrage_cost"`
	PortHandlingCost  float64          `json:"port_handling_cost"`
	StorageCost       float64          `json:"storage_cost"`
	TotalCost         float64          `json:"total_cost"`
	Distribution      CostDistribution `json:"distribution"`
}

type RailTransportation struct {
	RecommendedRakes     int     `json:"recommended_rakes"`
	TransitTimeDays      float64 `json:"transit_time_days"`
	RouteCongestionLevel string  `json:"route_congestion_level"`
}

type PortToPlantReport struct {
	VesselID            string                  `json:"vessel_id"`
	TotalCargoVolume    float64                 `json:"total_cargo_volume"`
	LoadingDaysRequired int                     `json:"loading_days_required"`
	RakeUtilization     int                     `json:"rake_utilization_efficiency"`
	RakeUtilizationCap  int                     `json:"rake_utilization_display"`
	PlantAllocations    []PlantAllocationReport `json:"plant_allocations"`
	Costs               CostSummary             `json:"costs"`
	PerformanceScore    int                     `json:"overall_performance_score"`
	LoadingStartDate    time.Time               `json:"loading_start_date"`
	LoadingEndDate      time.Time               `json:"loading_end_date"`
	RailTransportation  RailTransportation      `json:"rail_transportation"`
	RiskAssessment      string                  `json:"risk_assessment"`
	Recommendations     []string                `json:"optimization_recommendations"`
	TransitPhase        string                  `json:"transit_phase"`
}

// newPortToPlantReport exposes the raw utilization value and a
// separate display field capped at 100; the computation layer never
// clamps.
func newPortToPlantReport(r *domain.PortToPlantReport) PortToPlantReport {
	display := r.RakeUtilizationEfficiency
	if display > 100 {
		display = 100
	}

	out := PortToPlantReport{
		VesselID:            r.VesselID,
		TotalCargoVolume:    r.TotalCargoVolume,
		LoadingDaysRequired: r.LoadingDaysRequired,
		RakeUtilization:     r.RakeUtilizationEfficiency,
		RakeUtilizationCap:  display,
		PerformanceScore:    r.OverallPerformanceScore,
		LoadingStartDate:    r.LoadingStartDate,
		LoadingEndDate:      r.LoadingEndDate,
		RiskAssessment:      r.RiskAssessment,
		Recommendations:     r.OptimizationRecommendations,
		TransitPhase:        r.TransitPhase,
		RailTransportation: RailTransportation{
			RecommendedRakes:     r.RailTransportation.RecommendedRakes,
			TransitTimeDays:      r.RailTransportation.TransitTimeDays,
			RouteCongestionLevel: r.RailTransportation.RouteCongestionLevel,
		},
		Costs: CostSummary{
			RailTransportCost: r.Costs.RailTransportCost,
			FringeRailCost:    r.Costs.FringeRailCost,
			DemurrageCost:     r.Costs.DemurrageCost,
			PortHandlingCost:  r.Costs.PortHandlingCost,
			StorageCost:       r.Costs.StorageCost,
			TotalCost:         r.Costs.TotalCost,
			Distribution: CostDistribution{
				RailTransportPct: r.Costs.Distribution.RailTransportPct,
				FringeRailPct:    r.Costs.Distribution.FringeRailPct,
				DemurragePct:     r.Costs.Distribution.DemurragePct,
				PortHandlingPct:  r.Costs.Distribution.PortHandlingPct,
				StoragePct:       r.Costs.Distribution.StoragePct,
			},
		},
		PlantAllocations: make([]PlantAllocationReport, 0, len(r.PlantAllocations)),
	}

	for _, a := range r.PlantAllocations {
		out.PlantAllocations = append(out.PlantAllocations, PlantAllocationReport{
			PlantName:             a.PlantName,
			RequiredQuantity:      a.RequiredQuantity,
			StockAvailable:        a.StockAvailable,
			ShortfallQuantity:     a.ShortfallQuantity,
			AllocationPercentage:  a.AllocationPercentage,
			PriorityLevel:         a.PriorityLevel,
			EstimatedDeliveryDays: a.EstimatedDeliveryDays,
		})
	}

	return out
}

type ScenarioMetrics struct {
	TransitTimeDays    float64 `json:"transit_time_days"`
	TotalCost          float64 `json:"total_cost"`
	DemurrageCost      float64 `json:"demurrage_cost"`
	RakeUtilizationPct float64 `json:"rake_utilization_pct"`
	CostPerTonne       float64 `json:"cost_per_tonne"`
}

type ImprovementMetrics struct {
	TransitTimeReductionPct float64 `json:"transit_time_reduction_pct"`
	CostSavings             float64 `json:"cost_savings"`
	CostSavingsPct          float64 `json:"cost_savings_pct"`
	DemurrageSavings        float64 `json:"demurrage_savings"`
	UtilizationGainPct      float64 `json:"utilization_gain_pct"`
}

type VoyageEnrichment struct {
	WeatherSummary   string  `json:"weather_summary"`
	WindSpeedKts     float64 `json:"wind_speed_kts"`
	WaveHeightM      float64 `json:"wave_height_m"`
	CongestionLevel  string  `json:"congestion_level"`
	QueuedShips      int     `json:"queued_ships"`
	AvgWaitHours     float64 `json:"avg_wait_hours"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	SpeedKts         float64 `json:"speed_kts"`
	DistanceToPortNm float64 `json:"distance_to_port_nm"`
	Degraded         bool    `json:"degraded"`
}

type OptimizationReport struct {
	VesselID        string             `json:"vessel_id"`
	Voyage          VoyageEnrichment   `json:"voyage"`
	Traditional     ScenarioMetrics    `json:"traditional"`
	Optimized       ScenarioMetrics    `json:"optimized"`
	Improvements    ImprovementMetrics `json:"improvements"`
	Recommendations []string           `json:"recommendations"`
}

func newOptimizationReport(r *domain.OptimizationReport) OptimizationReport {
	return OptimizationReport{
		VesselID: r.VesselID,
		Voyage: VoyageEnrichment{
			WeatherSummary:   r.Voyage.Weather.Summary,
			WindSpeedKts:     r.Voyage.Weather.WindSpeedKts,
			WaveHeightM:      r.Voyage.Weather.WaveHeightM,
			CongestionLevel:  r.Voyage.Congestion.Level,
			QueuedShips:      r.Voyage.Congestion.QueuedShips,
			AvgWaitHours:     r.Voyage.Congestion.AvgWaitHours,
			Latitude:         r.Voyage.Tracking.Latitude,
			Longitude:        r.Voyage.Tracking.Longitude,
			SpeedKts:         r.Voyage.Tracking.SpeedKts,
			DistanceToPortNm: r.Voyage.Tracking.DistanceToPortNm,
			Degraded:         r.Voyage.Degraded,
		},
		Traditional:     newScenarioMetrics(r.Comparison.Traditional),
		Optimized:       newScenarioMetrics(r.Comparison.Optimized),
		Improvements:    newImprovementMetrics(r.Comparison.Improvements),
		Recommendations: r.Recommendations,
	}
}

func newScenarioMetrics(m domain.ScenarioMetrics) ScenarioMetrics {
	return ScenarioMetrics{
		TransitTimeDays:    m.TransitTimeDays,
		TotalCost:          m.TotalCost,
		DemurrageCost:      m.DemurrageCost,
		RakeUtilizationPct: m.RakeUtilizationPct,
		CostPerTonne:       m.CostPerTonne,
	}
}

func newImprovementMetrics(m domain.ImprovementMetrics) ImprovementMetrics {
	return ImprovementMetrics{
		TransitTimeReductionPct: m.TransitTimeReductionPct,
		CostSavings:             m.CostSavings,
		CostSavingsPct:          m.CostSavingsPct,
		DemurrageSavings:        m.DemurrageSavings,
		UtilizationGainPct:      m.UtilizationGainPct,
	}
}
