package handlers

import (
	"net/http"

	"vessel-logistics-service/internal/api/dto"
	"vessel-logistics-service/internal/services"
)

// PortToPlantHandler exposes the synchronous cache-or-create
// port-to-plant analysis.
type PortToPlantHandler struct {
	Service *services.PortToPlantService
}

func (h *PortToPlantHandler) Get(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	rec, err := h.Service.Get(r.Context(), vesselID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := dto.NewAnalysisResponse(rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeData(w, r, res)
}

func (h *PortToPlantHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	rec, err := h.Service.Regenerate(r.Context(), vesselID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := dto.NewAnalysisResponse(rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeDataMsg(w, r, res, "port-to-plant analysis regenerated")
}
