package domain

import "time"

// DelayPrediction is one entry in the append-only prediction history
// for a vessel. Records are never updated in place; retention is
// "keep the last N" by timestamp.
type DelayPrediction struct {
	PredictionID      string
	VesselID          string
	PredictedDelayHrs float64
	Confidence        int
	RiskLevel         string
	Factors           []string
	RevisedETA        time.Time
	CreatedAt         time.Time
}
