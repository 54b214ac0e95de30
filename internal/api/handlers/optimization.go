package handlers

import (
	"net/http"

	"vessel-logistics-service/internal/api/dto"
	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/services"
)

// OptimizationHandler exposes the async optimization analysis: GET
// launches or polls, regenerate discards and relaunches. Clients poll
// GET until the record leaves the computing state.
type OptimizationHandler struct {
	Coordinator *services.Coordinator
}

func (h *OptimizationHandler) Get(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	rec, launched, err := h.Coordinator.Request(r.Context(), vesselID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := dto.NewAnalysisResponse(rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	switch {
	case launched:
		writeDataMsg(w, r, res, "optimization analysis started; poll this endpoint for the result")
	case rec.Status == domain.AnalysisComputing:
		writeDataMsg(w, r, res, "optimization analysis is still computing")
	default:
		writeData(w, r, res)
	}
}

func (h *OptimizationHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	rec, err := h.Coordinator.Regenerate(r.Context(), vesselID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res, err := dto.NewAnalysisResponse(rec)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeDataMsg(w, r, res, "optimization analysis regenerating; poll the analysis endpoint for the result")
}
