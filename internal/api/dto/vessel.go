package dto

import (
	"time"

	"vessel-logistics-service/internal/domain"
)

type PlantAllocation struct {
	PlantName              string  `json:"plant_name"`
	RequiredQuantity       float64 `json:"required_quantity"`
	PlantStockAvailability float64 `json:"plant_stock_availability"`
}

type Parcel struct {
	Size         float64           `json:"size"`
	MaterialType string            `json:"material_type"`
	Allocations  []PlantAllocation `json:"plant_allocations"`
}

type RailData struct {
	RakeCapacity          float64 `json:"rake_capacity"`
	LoadingTimePerDay     float64 `json:"loading_time_per_day"`
	Availability          string  `json:"availability"`
	NumberOfRakesRequired int     `json:"number_of_rakes_required"`
}

type VesselResponse struct {
	VesselID         string    `json:"vessel_id"`
	Name             string    `json:"name"`
	Capacity         float64   `json:"capacity"`
	ETA              time.Time `json:"eta"`
	LoadPort         string    `json:"load_port"`
	TotalCargoVolume float64   `json:"total_cargo_volume"`
	Parcels          []Parcel  `json:"parcels"`
	Rail             RailData  `json:"rail_data"`
}

func NewVesselResponse(v *domain.Vessel) VesselResponse {
	out := VesselResponse{
		VesselID:         v.VesselID,
		Name:             v.Name,
		Capacity:         v.Capacity,
		ETA:              v.ETA,
		LoadPort:         v.LoadPort,
		TotalCargoVolume: v.TotalCargoVolume(),
		Rail: RailData{
			RakeCapacity:          v.Rail.RakeCapacity,
			LoadingTimePerDay:     v.Rail.LoadingTimePerDay,
			Availability:          v.Rail.Availability,
			NumberOfRakesRequired: v.Rail.NumberOfRakesRequired,
		},
		Parcels: make([]Parcel, 0, len(v.Parcels)),
	}

	for _, p := range v.Parcels {
		parcel := Parcel{
			Size:         p.Size,
			MaterialType: p.MaterialType,
			Allocations:  make([]PlantAllocation, 0, len(p.Allocations)),
		}
		for _, a := range p.Allocations {
			parcel.Allocations = append(parcel.Allocations, PlantAllocation{
				PlantName:              a.PlantName,
				RequiredQuantity:       a.RequiredQuantity,
				PlantStockAvailability: a.PlantStockAvailability,
			})
		}
		out.Parcels = append(out.Parcels, parcel)
	}

	return out
}
