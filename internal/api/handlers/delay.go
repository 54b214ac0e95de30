package handlers

import (
	"net/http"
	"strconv"

	"vessel-logistics-service/internal/api/dto"
	"vessel-logistics-service/internal/services"
)

const defaultKeepLast = 5

// DelayHandler exposes the delay prediction history endpoints.
type DelayHandler struct {
	Service *services.DelayService
}

func (h *DelayHandler) Predict(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	pred, err := h.Service.Predict(r.Context(), vesselID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeData(w, r, dto.NewDelayPredictionResponse(pred))
}

func (h *DelayHandler) History(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, r, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	preds, err := h.Service.History(r.Context(), vesselID, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := make([]dto.DelayPredictionResponse, 0, len(preds))
	for _, p := range preds {
		res = append(res, dto.NewDelayPredictionResponse(p))
	}

	writeList(w, r, res, len(res))
}

func (h *DelayHandler) Cleanup(w http.ResponseWriter, r *http.Request) {
	vesselID := r.PathValue("vesselID")

	keepLast := defaultKeepLast
	if raw := r.URL.Query().Get("keepLast"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, r, http.StatusBadRequest, "keepLast must be a non-negative integer")
			return
		}
		keepLast = n
	}

	removed, err := h.Service.Cleanup(r.Context(), vesselID, keepLast)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeList(w, r, map[string]int{"removed": removed, "kept": keepLast}, removed)
}
