package repositories

import (
	"time"

	"vessel-logistics-service/internal/domain"
)

// Vessel aggregates are persisted as JSON documents (the nested
// parcel/allocation structure maps poorly onto flat rows and is only
// ever read whole). The same document shape doubles as the seed file
// format.

type vesselDoc struct {
	VesselID string      `json:"vessel_id"`
	Name     string      `json:"name"`
	Capacity float64     `json:"capacity"`
	ETA      time.Time   `json:"eta"`
	LoadPort string      `json:"load_port"`
	Parcels  []parcelDoc `json:"parcels"`
	Rail     railDoc     `json:"rail_data"`
	Costs    costDoc     `json:"cost_parameters"`
}

type parcelDoc struct {
	Size         float64         `json:"size"`
	MaterialType string          `json:"material_type"`
	Allocations  []allocationDoc `json:"plant_allocations"`
}

type allocationDoc struct {
	PlantName              string  `json:"plant_name"`
	RequiredQuantity       float64 `json:"required_quantity"`
	PlantStockAvailability float64 `json:"plant_stock_availability"`
}

type railDoc struct {
	RakeCapacity          float64 `json:"rake_capacity"`
	LoadingTimePerDay     float64 `json:"loading_time_per_day"`
	Availability          string  `json:"availability"`
	NumberOfRakesRequired int     `json:"number_of_rakes_required"`
}

type costDoc struct {
	FringeRailRate   float64 `json:"fringe_rail_rate"`
	DemurrageRate    float64 `json:"demurrage_rate"`
	PortHandlingRate float64 `json:"port_handling_rate"`
	StorageRate      float64 `json:"storage_rate"`
	FreeTimeDays     int     `json:"free_time_days"`
}

func (d vesselDoc) toDomain() *domain.Vessel {
	v := &domain.Vessel{
		VesselID: d.VesselID,
		Name:     d.Name,
		Capacity: d.Capacity,
		ETA:      d.ETA,
		LoadPort: d.LoadPort,
		Rail: domain.RailData{
			RakeCapacity:          d.Rail.RakeCapacity,
			LoadingTimePerDay:     d.Rail.LoadingTimePerDay,
			Availability:          d.Rail.Availability,
			NumberOfRakesRequired: d.Rail.NumberOfRakesRequired,
		},
		Costs: domain.CostParameters{
			FringeRailRate:   d.Costs.FringeRailRate,
			DemurrageRate:    d.Costs.DemurrageRate,
			PortHandlingRate: d.Costs.PortHandlingRate,
			StorageRate:      d.Costs.StorageRate,
			FreeTimeDays:     d.Costs.FreeTimeDays,
		},
	}
	for _, p := range d.Parcels {
		parcel := domain.Parcel{Size: p.Size, MaterialType: p.MaterialType}
		for _, a := range p.Allocations {
			parcel.Allocations = append(parcel.Allocations, domain.PlantAllocation{
				PlantName:              a.PlantName,
				RequiredQuantity:       a.RequiredQuantity,
				PlantStockAvailability: a.PlantStockAvailability,
			})
		}
		v.Parcels = append(v.Parcels, parcel)
	}
	return v
}

type delayDoc struct {
	PredictionID      string    `json:"prediction_id"`
	VesselID          string    `json:"vessel_id"`
	PredictedDelayHrs float64   `json:"predicted_delay_hours"`
	Confidence        int       `json:"confidence"`
	RiskLevel         string    `json:"risk_level"`
	Factors           []string  `json:"factors"`
	RevisedETA        time.Time `json:"revised_eta"`
	CreatedAt         time.Time `json:"created_at"`
}

func delayDocFromDomain(p *domain.DelayPrediction) delayDoc {
	return delayDoc{
		PredictionID:      p.PredictionID,
		VesselID:          p.VesselID,
		PredictedDelayHrs: p.PredictedDelayHrs,
		Confidence:        p.Confidence,
		RiskLevel:         p.RiskLevel,
		Factors:           p.Factors,
		RevisedETA:        p.RevisedETA,
		CreatedAt:         p.CreatedAt,
	}
}

func (d delayDoc) toDomain() *domain.DelayPrediction {
	return &domain.DelayPrediction{
		PredictionID:      d.PredictionID,
		VesselID:          d.VesselID,
		PredictedDelayHrs: d.PredictedDelayHrs,
		Confidence:        d.Confidence,
		RiskLevel:         d.RiskLevel,
		Factors:           d.Factors,
		RevisedETA:        d.RevisedETA,
		CreatedAt:         d.CreatedAt,
	}
}
