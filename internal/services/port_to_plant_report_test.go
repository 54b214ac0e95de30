package services

import (
	"errors"
	"testing"
	"time"

	"vessel-logistics-service/internal/domain"
)

func testAnalysis() *domain.AIPortToPlantAnalysis {
	return &domain.AIPortToPlantAnalysis{
		CostBreakdown: domain.AICostBreakdown{
			TotalRailTransportCost: 8_000_000,
			DemurrageCost:          400_000,
			StorageCost:            250_000,
		},
		PerformanceMetrics: domain.AIPerformanceMetrics{
			CostEfficiencyScore: 70, TimelinessScore: 80, UtilizationScore: 75,
		},
		RailTransportation: domain.RailTransportation{
			RecommendedRakes: 3, TransitTimeDays: 4, RouteCongestionLevel: "Medium",
		},
		RiskAssessment:              "Moderate risk",
		OptimizationRecommendations: []string{"Pre-book rakes"},
		TransitPhase:                "In Transit",
	}
}

func TestBuildPortToPlantReport(t *testing.T) {
	v := testVessel()
	report, err := BuildPortToPlantReport(v, testAnalysis())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.TotalCargoVolume != 9500 {
		t.Fatalf("volume = %v, want 9500", report.TotalCargoVolume)
	}
	// 9500t at 2000t/day needs a fifth, partial day.
	if report.LoadingDaysRequired != 5 {
		t.Fatalf("loading days = %d, want 5", report.LoadingDaysRequired)
	}
	// 9500t over 2 rakes of 4000t is over-subscribed: the efficiency
	// exceeds 100 and must not be clamped here.
	if report.RakeUtilizationEfficiency != 119 {
		t.Fatalf("rake utilization = %d, want 119 (unclamped)", report.RakeUtilizationEfficiency)
	}
	if report.OverallPerformanceScore != 75 {
		t.Fatalf("performance score = %d, want 75", report.OverallPerformanceScore)
	}

	if !report.LoadingStartDate.Equal(v.ETA) {
		t.Fatalf("loading start = %v, want ETA %v", report.LoadingStartDate, v.ETA)
	}
	wantEnd := time.Date(2026, 9, 15, 6, 0, 0, 0, time.UTC)
	if !report.LoadingEndDate.Equal(wantEnd) {
		t.Fatalf("loading end = %v, want %v", report.LoadingEndDate, wantEnd)
	}

	if len(report.PlantAllocations) != 2 {
		t.Fatalf("got %d plant allocations, want 2", len(report.PlantAllocations))
	}
	durgapur := report.PlantAllocations[0]
	if durgapur.PlantName != "Durgapur Works" {
		t.Fatalf("first plant = %q, want first-seen order preserved", durgapur.PlantName)
	}
	if durgapur.ShortfallQuantity != 1400 {
		t.Fatalf("Durgapur shortfall = %v, want 1400", durgapur.ShortfallQuantity)
	}
	if durgapur.AllocationPercentage != 37 {
		t.Fatalf("Durgapur allocation = %d%%, want 37", durgapur.AllocationPercentage)
	}
	bokaro := report.PlantAllocations[1]
	if bokaro.ShortfallQuantity != 0 {
		t.Fatalf("Bokaro shortfall = %v, want 0 (stock covers demand)", bokaro.ShortfallQuantity)
	}
	if bokaro.AllocationPercentage != 63 {
		t.Fatalf("Bokaro allocation = %d%%, want 63", bokaro.AllocationPercentage)
	}

	costs := report.Costs
	if costs.FringeRailCost != 950_000 {
		t.Fatalf("fringe cost = %v, want 950000", costs.FringeRailCost)
	}
	if costs.PortHandlingCost != 475_000 {
		t.Fatalf("handling cost = %v, want 475000", costs.PortHandlingCost)
	}
	if costs.TotalCost != 10_075_000 {
		t.Fatalf("total cost = %v, want 10075000", costs.TotalCost)
	}

	d := costs.Distribution
	sum := d.RailTransportPct + d.FringeRailPct + d.DemurragePct + d.PortHandlingPct + d.StoragePct
	if sum < 99 || sum > 101 {
		t.Fatalf("distribution sums to %d, want 99..101 (independent rounding)", sum)
	}
	if d.RailTransportPct != 79 {
		t.Fatalf("rail pct = %d, want 79", d.RailTransportPct)
	}
}

func TestBuildPortToPlantReportAggregatesAcrossParcels(t *testing.T) {
	v := testVessel()
	// The same plant in a second parcel: quantities sum, stock keeps
	// the maximum observed value, first-seen order holds.
	v.Parcels = append(v.Parcels, domain.Parcel{
		Size:         1000,
		MaterialType: "Limestone",
		Allocations: []domain.PlantAllocation{
			{PlantName: "Durgapur Works", RequiredQuantity: 600, PlantStockAvailability: 2600},
			{PlantName: "Rourkela Works", RequiredQuantity: 400, PlantStockAvailability: 100},
		},
	})

	report, err := BuildPortToPlantReport(v, testAnalysis())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.PlantAllocations) != 3 {
		t.Fatalf("got %d plants, want 3", len(report.PlantAllocations))
	}
	durgapur := report.PlantAllocations[0]
	if durgapur.PlantName != "Durgapur Works" || durgapur.RequiredQuantity != 4100 {
		t.Fatalf("Durgapur = %+v, want summed quantity 4100 in first position", durgapur)
	}
	if durgapur.StockAvailable != 2600 {
		t.Fatalf("Durgapur stock = %v, want max across parcels 2600", durgapur.StockAvailable)
	}
	if report.PlantAllocations[2].PlantName != "Rourkela Works" {
		t.Fatalf("third plant = %q, want Rourkela Works", report.PlantAllocations[2].PlantName)
	}
}

func TestBuildPortToPlantReportMergeFallbacks(t *testing.T) {
	v := testVessel()
	v.Parcels = []domain.Parcel{{
		Size:         9500,
		MaterialType: "Iron Ore",
		Allocations: []domain.PlantAllocation{
			{PlantName: "Plant A", RequiredQuantity: 3000, PlantStockAvailability: 3000},
			{PlantName: "Plant B", RequiredQuantity: 3500, PlantStockAvailability: 3500},
			{PlantName: "Plant C", RequiredQuantity: 3000, PlantStockAvailability: 3000},
		},
	}}

	ai := testAnalysis()
	ai.PlantAllocations = []domain.AIPlantAllocation{
		{PlantName: "Somewhere Else", PriorityLevel: "Low", EstimatedDeliveryDays: 2},
		{PlantName: "Plant B", PriorityLevel: "High", EstimatedDeliveryDays: 3},
	}

	report, err := BuildPortToPlantReport(v, ai)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Plant A has no name match and falls back to the same index.
	a := report.PlantAllocations[0]
	if a.PriorityLevel != "Low" || a.EstimatedDeliveryDays != 2 {
		t.Fatalf("Plant A = %q/%d, want index fallback Low/2", a.PriorityLevel, a.EstimatedDeliveryDays)
	}
	// Plant B matches by name even though the positions differ.
	b := report.PlantAllocations[1]
	if b.PriorityLevel != "High" || b.EstimatedDeliveryDays != 3 {
		t.Fatalf("Plant B = %q/%d, want name match High/3", b.PriorityLevel, b.EstimatedDeliveryDays)
	}
	// Plant C has neither and gets the fixed defaults.
	c := report.PlantAllocations[2]
	if c.PriorityLevel != "Medium" || c.EstimatedDeliveryDays != 7 {
		t.Fatalf("Plant C = %q/%d, want defaults Medium/7", c.PriorityLevel, c.EstimatedDeliveryDays)
	}
}

func TestBuildPortToPlantReportValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(v *domain.Vessel, ai *domain.AIPortToPlantAnalysis)
		missing bool
	}{
		{
			name:    "empty transit phase",
			mutate:  func(_ *domain.Vessel, ai *domain.AIPortToPlantAnalysis) { ai.TransitPhase = "" },
			missing: true,
		},
		{
			name:    "empty risk assessment",
			mutate:  func(_ *domain.Vessel, ai *domain.AIPortToPlantAnalysis) { ai.RiskAssessment = "" },
			missing: true,
		},
		{
			name: "negative cost component",
			mutate: func(_ *domain.Vessel, ai *domain.AIPortToPlantAnalysis) {
				ai.CostBreakdown.DemurrageCost = -1
			},
			missing: true,
		},
		{
			name:   "zero cargo volume",
			mutate: func(v *domain.Vessel, _ *domain.AIPortToPlantAnalysis) { v.Parcels = nil },
		},
		{
			name:   "zero loading rate",
			mutate: func(v *domain.Vessel, _ *domain.AIPortToPlantAnalysis) { v.Rail.LoadingTimePerDay = 0 },
		},
		{
			name:   "zero rakes",
			mutate: func(v *domain.Vessel, _ *domain.AIPortToPlantAnalysis) { v.Rail.NumberOfRakesRequired = 0 },
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := testVessel()
			ai := testAnalysis()
			tc.mutate(v, ai)

			_, err := BuildPortToPlantReport(v, ai)
			if err == nil {
				t.Fatal("expected an error")
			}
			var mf *domain.MissingFieldError
			var val *domain.ValidationError
			switch {
			case tc.missing && !errors.As(err, &mf):
				t.Fatalf("err = %v, want MissingFieldError", err)
			case !tc.missing && !errors.As(err, &val):
				t.Fatalf("err = %v, want ValidationError", err)
			}
		})
	}

	if _, err := BuildPortToPlantReport(testVessel(), nil); err == nil {
		t.Fatal("nil analysis must be rejected")
	}
}
