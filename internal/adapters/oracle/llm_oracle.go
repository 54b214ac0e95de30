package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/platform/obs"
)

// LLMOracle implements the Oracle port against an OpenAI-compatible
// chat-completion API.
//
// It coordinates:
//   - Prompt construction from vessel facts
//   - External API calls with retry/backoff
//   - Balanced-brace JSON extraction from free-form output
//   - Per-field clamping with defaults for anything missing
//
// The oracle is safe for concurrent use.
type LLMOracle struct {
	session *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewLLMOracle(apiKey, baseURL, model string) (*LLMOracle, error) {
	if apiKey == "" {
		return nil, errors.New("oracle api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &LLMOracle{
		session: &http.Client{Timeout: 45 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}, nil
}

func (o *LLMOracle) Model() string { return o.model }

var riskLevels = []string{"Low", "Medium", "High"}

// ---- port-to-plant analysis ----

type portToPlantWire struct {
	CostBreakdown *struct {
		TotalRailTransportCost *float64 `json:"totalRailTransportCost"`
		DemurrageCost          *float64 `json:"demurrageCost"`
		StorageCost            *float64 `json:"storageCost"`
	} `json:"costBreakdown"`
	PlantDistributionAnalysis *struct {
		PlantAllocations []struct {
			PlantName             *string `json:"plantName"`
			PriorityLevel         *string `json:"priorityLevel"`
			EstimatedDeliveryDays *int    `json:"estimatedDeliveryDays"`
		} `json:"plantAllocations"`
	} `json:"plantDistributionAnalysis"`
	PerformanceMetrics *struct {
		CostEfficiencyScore *float64 `json:"costEfficiencyScore"`
		TimelinessScore     *float64 `json:"timelinessScore"`
		UtilizationScore    *float64 `json:"utilizationScore"`
	} `json:"performanceMetrics"`
	RailTransportationAnalysis *struct {
		RecommendedRakes     *int     `json:"recommendedRakes"`
		TransitTimeDays      *float64 `json:"transitTimeDays"`
		RouteCongestionLevel *string  `json:"routeCongestionLevel"`
	} `json:"railTransportationAnalysis"`
	RiskAssessment              *string  `json:"riskAssessment"`
	OptimizationRecommendations []string `json:"optimizationRecommendations"`
	TimelineAnalysis            *struct {
		TransitPhase *string `json:"transitPhase"`
	} `json:"timelineAnalysis"`
}

func (o *LLMOracle) PortToPlantAnalysis(ctx context.Context, v *domain.Vessel) (_ *domain.AIPortToPlantAnalysis, err error) {
	defer obs.Time(ctx, "oracle.PortToPlantAnalysis")(&err)

	text, err := o.complete(ctx, portToPlantPrompt(v))
	if err != nil {
		return nil, fmt.Errorf("port-to-plant completion: %w", err)
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("port-to-plant output: %w", err)
	}

	var wire portToPlantWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("parse port-to-plant output: %w", err)
	}

	volume := v.TotalCargoVolume()
	out := &domain.AIPortToPlantAnalysis{
		RiskAssessment: stringOr(wire.RiskAssessment, "Moderate schedule risk driven by rail availability"),
		TransitPhase:   "In Transit",
	}

	// Cost defaults scale with cargo volume so a silent oracle still
	// yields a plausible report.
	var rail, demurrage, storage *float64
	if wire.CostBreakdown != nil {
		rail = wire.CostBreakdown.TotalRailTransportCost
		demurrage = wire.CostBreakdown.DemurrageCost
		storage = wire.CostBreakdown.StorageCost
	}
	out.CostBreakdown = domain.AICostBreakdown{
		TotalRailTransportCost: clampFloat(rail, 0, 1e9, 800*volume),
		DemurrageCost:          clampFloat(demurrage, 0, 1e8, 40*volume),
		StorageCost:            clampFloat(storage, 0, 1e8, 25*volume),
	}

	if wire.PerformanceMetrics != nil {
		out.PerformanceMetrics = domain.AIPerformanceMetrics{
			CostEfficiencyScore: clampFloat(wire.PerformanceMetrics.CostEfficiencyScore, 0, 100, 70),
			TimelinessScore:     clampFloat(wire.PerformanceMetrics.TimelinessScore, 0, 100, 75),
			UtilizationScore:    clampFloat(wire.PerformanceMetrics.UtilizationScore, 0, 100, 72),
		}
	} else {
		out.PerformanceMetrics = domain.AIPerformanceMetrics{
			CostEfficiencyScore: 70, TimelinessScore: 75, UtilizationScore: 72,
		}
	}

	var rakes *int
	var transit *float64
	var congestion *string
	if wire.RailTransportationAnalysis != nil {
		rakes = wire.RailTransportationAnalysis.RecommendedRakes
		transit = wire.RailTransportationAnalysis.TransitTimeDays
		congestion = wire.RailTransportationAnalysis.RouteCongestionLevel
	}
	out.RailTransportation = domain.RailTransportation{
		RecommendedRakes:     clampInt(rakes, 1, 100, v.Rail.NumberOfRakesRequired),
		TransitTimeDays:      clampFloat(transit, 0.5, 60, 4),
		RouteCongestionLevel: pickString(congestion, riskLevels, "Medium"),
	}

	if wire.TimelineAnalysis != nil {
		out.TransitPhase = stringOr(wire.TimelineAnalysis.TransitPhase, "In Transit")
	}

	if wire.PlantDistributionAnalysis != nil {
		for _, a := range wire.PlantDistributionAnalysis.PlantAllocations {
			out.PlantAllocations = append(out.PlantAllocations, domain.AIPlantAllocation{
				PlantName:             stringOr(a.PlantName, ""),
				PriorityLevel:         pickString(a.PriorityLevel, riskLevels, "Medium"),
				EstimatedDeliveryDays: clampInt(a.EstimatedDeliveryDays, 1, 60, 7),
			})
		}
	}

	out.OptimizationRecommendations = wire.OptimizationRecommendations
	if len(out.OptimizationRecommendations) == 0 {
		out.OptimizationRecommendations = []string{
			"Schedule rakes against confirmed plant unloading windows",
		}
	}

	return out, nil
}

// ---- optimization baseline ----

type optimizationWire struct {
	Baseline *struct {
		TransitTimeDays    *float64 `json:"transitTimeDays"`
		TotalCost          *float64 `json:"totalCost"`
		DemurrageCost      *float64 `json:"demurrageCost"`
		RakeUtilizationPct *float64 `json:"rakeUtilizationPct"`
	} `json:"baseline"`
	Recommendations []string `json:"recommendations"`
}

func (o *LLMOracle) OptimizationBaseline(ctx context.Context, v *domain.Vessel) (_ *domain.OptimizationBaseline, err error) {
	defer obs.Time(ctx, "oracle.OptimizationBaseline")(&err)

	text, err := o.complete(ctx, optimizationPrompt(v))
	if err != nil {
		return nil, fmt.Errorf("optimization completion: %w", err)
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("optimization output: %w", err)
	}

	var wire optimizationWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("parse optimization output: %w", err)
	}

	volume := v.TotalCargoVolume()
	var transit, total, demurrage, utilization *float64
	if wire.Baseline != nil {
		transit = wire.Baseline.TransitTimeDays
		total = wire.Baseline.TotalCost
		demurrage = wire.Baseline.DemurrageCost
		utilization = wire.Baseline.RakeUtilizationPct
	}

	out := &domain.OptimizationBaseline{
		Metrics: domain.ScenarioMetrics{
			TransitTimeDays:    clampFloat(transit, 0.5, 60, 5),
			TotalCost:          clampFloat(total, 1, 1e9, 900*volume),
			DemurrageCost:      clampFloat(demurrage, 0, 1e8, 45*volume),
			RakeUtilizationPct: clampFloat(utilization, 1, 200, 78),
		},
		Recommendations: wire.Recommendations,
	}
	if len(out.Recommendations) == 0 {
		out.Recommendations = []string{
			"Pre-book rakes for the full discharge window",
			"Negotiate extended free time at the load port",
		}
	}

	return out, nil
}

// ---- delay prediction ----

type delayWire struct {
	PredictedDelayHours *float64 `json:"predictedDelayHours"`
	Confidence          *int     `json:"confidence"`
	RiskLevel           *string  `json:"riskLevel"`
	Factors             []string `json:"factors"`
}

func (o *LLMOracle) PredictDelay(ctx context.Context, v *domain.Vessel, e *domain.VoyageEnrichment) (_ *domain.DelayPrediction, err error) {
	defer obs.Time(ctx, "oracle.PredictDelay")(&err)

	text, err := o.complete(ctx, delayPrompt(v, e))
	if err != nil {
		return nil, fmt.Errorf("delay completion: %w", err)
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("delay output: %w", err)
	}

	var wire delayWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("parse delay output: %w", err)
	}

	pred := &domain.DelayPrediction{
		PredictedDelayHrs: clampFloat(wire.PredictedDelayHours, 0, 240, 12),
		Confidence:        clampInt(wire.Confidence, 0, 100, 75),
		RiskLevel:         pickString(wire.RiskLevel, riskLevels, "Medium"),
		Factors:           wire.Factors,
	}
	if len(pred.Factors) == 0 {
		pred.Factors = []string{"Port congestion at discharge port"}
	}

	return pred, nil
}

// ---- voyage enrichment ----

type enrichmentWire struct {
	Weather *struct {
		Summary      *string  `json:"summary"`
		WindSpeedKts *float64 `json:"windSpeedKts"`
		WaveHeightM  *float64 `json:"waveHeightM"`
	} `json:"weather"`
	PortCongestion *struct {
		Level        *string  `json:"level"`
		QueuedShips  *int     `json:"queuedShips"`
		AvgWaitHours *float64 `json:"avgWaitHours"`
	} `json:"portCongestion"`
	Tracking *struct {
		Latitude         *float64 `json:"latitude"`
		Longitude        *float64 `json:"longitude"`
		SpeedKts         *float64 `json:"speedKts"`
		DistanceToPortNm *float64 `json:"distanceToPortNm"`
	} `json:"tracking"`
}

func (o *LLMOracle) VoyageEnrichment(ctx context.Context, v *domain.Vessel) (_ *domain.VoyageEnrichment, err error) {
	defer obs.Time(ctx, "oracle.VoyageEnrichment")(&err)

	text, err := o.complete(ctx, enrichmentPrompt(v))
	if err != nil {
		return nil, fmt.Errorf("enrichment completion: %w", err)
	}

	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("enrichment output: %w", err)
	}

	var wire enrichmentWire
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("parse enrichment output: %w", err)
	}

	out := &domain.VoyageEnrichment{}

	var summary *string
	var wind, wave *float64
	if wire.Weather != nil {
		summary = wire.Weather.Summary
		wind = wire.Weather.WindSpeedKts
		wave = wire.Weather.WaveHeightM
	}
	out.Weather = domain.WeatherConditions{
		Summary:      stringOr(summary, "Moderate seas"),
		WindSpeedKts: clampFloat(wind, 0, 120, 12),
		WaveHeightM:  clampFloat(wave, 0, 20, 1.5),
	}

	var level *string
	var queued *int
	var wait *float64
	if wire.PortCongestion != nil {
		level = wire.PortCongestion.Level
		queued = wire.PortCongestion.QueuedShips
		wait = wire.PortCongestion.AvgWaitHours
	}
	out.Congestion = domain.PortCongestion{
		Level:        pickString(level, riskLevels, "Medium"),
		QueuedShips:  clampInt(queued, 0, 200, 4),
		AvgWaitHours: clampFloat(wait, 0, 720, 18),
	}

	var lat, lon, speed, dist *float64
	if wire.Tracking != nil {
		lat = wire.Tracking.Latitude
		lon = wire.Tracking.Longitude
		speed = wire.Tracking.SpeedKts
		dist = wire.Tracking.DistanceToPortNm
	}
	out.Tracking = domain.VesselTracking{
		Latitude:         clampFloat(lat, -90, 90, 0),
		Longitude:        clampFloat(lon, -180, 180, 0),
		SpeedKts:         clampFloat(speed, 0, 30, 11.5),
		DistanceToPortNm: clampFloat(dist, 0, 20000, 250),
	}

	return out, nil
}
