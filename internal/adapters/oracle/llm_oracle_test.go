package oracle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"vessel-logistics-service/internal/domain"
)

func chatStub(t *testing.T, content string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func oracleVessel() *domain.Vessel {
	return &domain.Vessel{
		VesselID: "MV-TEST-001",
		Name:     "MV Test",
		Capacity: 12000,
		ETA:      time.Date(2026, 9, 10, 6, 0, 0, 0, time.UTC),
		LoadPort: "Paradip",
		Parcels: []domain.Parcel{{
			Size:         1000,
			MaterialType: "Coking Coal",
			Allocations: []domain.PlantAllocation{
				{PlantName: "Durgapur Works", RequiredQuantity: 1000, PlantStockAvailability: 500},
			},
		}},
		Rail: domain.RailData{RakeCapacity: 3800, LoadingTimePerDay: 2000, NumberOfRakesRequired: 2},
	}
}

func TestLLMOraclePortToPlantAnalysisParsesProseWrappedJSON(t *testing.T) {
	content := "Here is the requested analysis:\n" +
		`{
			"costBreakdown": {"totalRailTransportCost": 900000, "demurrageCost": 50000, "storageCost": 30000},
			"performanceMetrics": {"costEfficiencyScore": 140, "timelinessScore": 60, "utilizationScore": 80},
			"railTransportationAnalysis": {"recommendedRakes": 2, "transitTimeDays": 3.5, "routeCongestionLevel": "Severe"},
			"riskAssessment": "Rail availability is the main constraint",
			"timelineAnalysis": {"transitPhase": "Loading"},
			"plantDistributionAnalysis": {"plantAllocations": [{"plantName": "Durgapur Works", "priorityLevel": "High", "estimatedDeliveryDays": 4}]}
		}` + "\nHope this helps!"
	srv := chatStub(t, content)

	o, err := NewLLMOracle("test-key", srv.URL, "test-model")
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}

	ai, err := o.PortToPlantAnalysis(context.Background(), oracleVessel())
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}

	if ai.CostBreakdown.TotalRailTransportCost != 900_000 {
		t.Fatalf("rail cost = %v, want 900000", ai.CostBreakdown.TotalRailTransportCost)
	}
	// Scores live on a 0-100 scale; 140 is clamped to the ceiling.
	if ai.PerformanceMetrics.CostEfficiencyScore != 100 {
		t.Fatalf("cost efficiency = %v, want clamped 100", ai.PerformanceMetrics.CostEfficiencyScore)
	}
	// "Severe" is not a recognized level and falls back to Medium.
	if ai.RailTransportation.RouteCongestionLevel != "Medium" {
		t.Fatalf("congestion = %q, want Medium", ai.RailTransportation.RouteCongestionLevel)
	}
	if ai.TransitPhase != "Loading" {
		t.Fatalf("transit phase = %q, want Loading", ai.TransitPhase)
	}
	if len(ai.PlantAllocations) != 1 || ai.PlantAllocations[0].PriorityLevel != "High" {
		t.Fatalf("plant allocations = %+v, want one High entry", ai.PlantAllocations)
	}
	// Recommendations were absent; the default set fills in.
	if len(ai.OptimizationRecommendations) == 0 {
		t.Fatal("missing recommendations must fall back to defaults")
	}
}

func TestLLMOraclePortToPlantAnalysisDefaultsScaleWithVolume(t *testing.T) {
	srv := chatStub(t, `{}`)

	o, err := NewLLMOracle("test-key", srv.URL, "test-model")
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}

	ai, err := o.PortToPlantAnalysis(context.Background(), oracleVessel())
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}

	// 1000t of cargo: rail 800/t, demurrage 40/t, storage 25/t.
	if ai.CostBreakdown.TotalRailTransportCost != 800_000 {
		t.Fatalf("default rail cost = %v, want 800000", ai.CostBreakdown.TotalRailTransportCost)
	}
	if ai.CostBreakdown.DemurrageCost != 40_000 {
		t.Fatalf("default demurrage = %v, want 40000", ai.CostBreakdown.DemurrageCost)
	}
	if ai.CostBreakdown.StorageCost != 25_000 {
		t.Fatalf("default storage = %v, want 25000", ai.CostBreakdown.StorageCost)
	}
	// Missing rake guidance falls back to the vessel's own rake count.
	if ai.RailTransportation.RecommendedRakes != 2 {
		t.Fatalf("default rakes = %d, want 2", ai.RailTransportation.RecommendedRakes)
	}
	if ai.RiskAssessment == "" || ai.TransitPhase != "In Transit" {
		t.Fatalf("defaults missing: risk=%q phase=%q", ai.RiskAssessment, ai.TransitPhase)
	}
}

func TestLLMOraclePredictDelayClampsFields(t *testing.T) {
	srv := chatStub(t, `{"predictedDelayHours": 999, "confidence": -5, "riskLevel": "High"}`)

	o, err := NewLLMOracle("test-key", srv.URL, "test-model")
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}

	pred, err := o.PredictDelay(context.Background(), oracleVessel(), &domain.VoyageEnrichment{})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if pred.PredictedDelayHrs != 240 {
		t.Fatalf("delay = %v, want clamped 240", pred.PredictedDelayHrs)
	}
	if pred.Confidence != 0 {
		t.Fatalf("confidence = %d, want clamped 0", pred.Confidence)
	}
	if pred.RiskLevel != "High" {
		t.Fatalf("risk = %q, want High", pred.RiskLevel)
	}
	if len(pred.Factors) == 0 {
		t.Fatal("missing factors must fall back to defaults")
	}
}

func TestLLMOracleRejectsNonJSONOutput(t *testing.T) {
	srv := chatStub(t, "I'm sorry, I cannot help with that request.")

	o, err := NewLLMOracle("test-key", srv.URL, "test-model")
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}

	if _, err := o.VoyageEnrichment(context.Background(), oracleVessel()); err == nil {
		t.Fatal("output without a JSON object must be an error")
	}
}

func TestLLMOracleRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"baseline": {"totalCost": 5000000}}`}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	o, err := NewLLMOracle("test-key", srv.URL, "test-model")
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}

	baseline, err := o.OptimizationBaseline(context.Background(), oracleVessel())
	if err != nil {
		t.Fatalf("baseline: %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("server hit %d times, want 3 (two retries)", got)
	}
	if baseline.Metrics.TotalCost != 5_000_000 {
		t.Fatalf("total cost = %v, want 5000000", baseline.Metrics.TotalCost)
	}
}

func TestLLMOracleDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	o, err := NewLLMOracle("test-key", srv.URL, "test-model")
	if err != nil {
		t.Fatalf("new oracle: %v", err)
	}

	if _, err := o.OptimizationBaseline(context.Background(), oracleVessel()); err == nil {
		t.Fatal("a 401 must surface as an error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server hit %d times, want 1 (no retry on 4xx)", got)
	}
}
