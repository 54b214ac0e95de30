package domain

import "time"

// Vessel is the aggregate root for a bulk-cargo shipment.
// It carries one or more parcels from a load port to steel plants,
// together with the rail and cost parameters used by downstream
// analysis and reporting.
type Vessel struct {
	VesselID string
	Name     string
	Capacity float64
	ETA      time.Time
	LoadPort string
	Parcels  []Parcel
	Rail     RailData
	Costs    CostParameters
}

// Parcel is a homogeneous cargo lot within the vessel's capacity,
// destined for one or more plants.
type Parcel struct {
	Size         float64
	MaterialType string
	Allocations  []PlantAllocation
}

// PlantAllocation states how much of a parcel a plant requires and
// how much stock that plant already holds.
type PlantAllocation struct {
	PlantName              string
	RequiredQuantity       float64
	PlantStockAvailability float64
}

// RailData describes the rake (trainload) logistics for moving cargo
// from the port to the plants.
type RailData struct {
	RakeCapacity          float64
	LoadingTimePerDay     float64
	Availability          string
	NumberOfRakesRequired int
}

// CostParameters are the locally known cost inputs. Rates are per
// tonne; FreeTime is the demurrage-free window in days.
type CostParameters struct {
	FringeRailRate   float64
	DemurrageRate    float64
	PortHandlingRate float64
	StorageRate      float64
	FreeTimeDays     int
}

// TotalCargoVolume returns the sum of all parcel sizes in tonnes.
func (v *Vessel) TotalCargoVolume() float64 {
	var total float64
	for _, p := range v.Parcels {
		total += p.Size
	}
	return total
}
