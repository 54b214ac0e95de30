package dto

import (
	"time"

	"vessel-logistics-service/internal/domain"
)

type DelayPredictionResponse struct {
	PredictionID        string    `json:"prediction_id"`
	VesselID            string    `json:"vessel_id"`
	PredictedDelayHours float64   `json:"predicted_delay_hours"`
	Confidence          int       `json:"confidence"`
	RiskLevel           string    `json:"risk_level"`
	Factors             []string  `json:"factors"`
	RevisedETA          time.Time `json:"revised_eta"`
	CreatedAt           time.Time `json:"created_at"`
}

func NewDelayPredictionResponse(p *domain.DelayPrediction) DelayPredictionResponse {
	return DelayPredictionResponse{
		PredictionID:        p.PredictionID,
		VesselID:            p.VesselID,
		PredictedDelayHours: p.PredictedDelayHrs,
		Confidence:          p.Confidence,
		RiskLevel:           p.RiskLevel,
		Factors:             p.Factors,
		RevisedETA:          p.RevisedETA,
		CreatedAt:           p.CreatedAt,
	}
}
