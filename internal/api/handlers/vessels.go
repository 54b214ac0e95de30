package handlers

import (
	"net/http"

	"vessel-logistics-service/internal/api/dto"
	"vessel-logistics-service/internal/ports"
)

// VesselHandler exposes read-only vessel retrieval endpoints.
type VesselHandler struct {
	Repo ports.VesselRepository
}

func (h *VesselHandler) List(w http.ResponseWriter, r *http.Request) {
	vessels, err := h.Repo.ListVessels(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := make([]dto.VesselResponse, 0, len(vessels))
	for _, v := range vessels {
		res = append(res, dto.NewVesselResponse(v))
	}

	writeList(w, r, res, len(res))
}

func (h *VesselHandler) Get(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	v, err := h.Repo.GetVessel(r.Context(), vesselID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeData(w, r, dto.NewVesselResponse(v))
}
