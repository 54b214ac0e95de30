package api

import (
	"net/http"

	"vessel-logistics-service/internal/api/handlers"
	"vessel-logistics-service/internal/ports"
	"vessel-logistics-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(
	vessels ports.VesselRepository,
	optimization *services.Coordinator,
	portToPlant *services.PortToPlantService,
	delay *services.DelayService,
) http.Handler {
	mux := http.NewServeMux()

	vesselHandler := &handlers.VesselHandler{Repo: vessels}
	optimizationHandler := &handlers.OptimizationHandler{Coordinator: optimization}
	portToPlantHandler := &handlers.PortToPlantHandler{Service: portToPlant}
	delayHandler := &handlers.DelayHandler{Service: delay}

	mux.HandleFunc("GET /health", handlers.Health)

	mux.HandleFunc("GET /api/vessels", vesselHandler.List)
	mux.HandleFunc("GET /api/vessels/{vesselID}", vesselHandler.Get)

	mux.HandleFunc("GET /api/optimization/vessel/{vesselID}", optimizationHandler.Get)
	mux.HandleFunc("POST /api/optimization/vessel/{vesselID}/regenerate", optimizationHandler.Regenerate)

	mux.HandleFunc("GET /api/port-to-plant/vessel/{vesselID}", portToPlantHandler.Get)
	mux.HandleFunc("POST /api/port-to-plant/vessel/{vesselID}/regenerate", portToPlantHandler.Regenerate)

	mux.HandleFunc("POST /api/delay/predict/{vesselID}", delayHandler.Predict)
	mux.HandleFunc("GET /api/delay/history/{vesselID}", delayHandler.History)
	mux.HandleFunc("DELETE /api/delay/cleanup/{vesselID}", delayHandler.Cleanup)

	return loggingMiddleware(mux)
}
