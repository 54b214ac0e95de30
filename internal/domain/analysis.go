package domain

import (
	"encoding/json"
	"time"
)

// AnalysisKind distinguishes the two stored analysis families.
type AnalysisKind string

const (
	AnalysisKindOptimization AnalysisKind = "optimization"
	AnalysisKindPortToPlant  AnalysisKind = "port_to_plant"
)

// AnalysisStatus is the lifecycle state of a stored analysis.
// Transitions are owned exclusively by the compute coordinator:
// computing -> completed | failed. Both terminal states are
// re-enterable only via an explicit regenerate.
type AnalysisStatus string

const (
	AnalysisComputing AnalysisStatus = "computing"
	AnalysisCompleted AnalysisStatus = "completed"
	AnalysisFailed    AnalysisStatus = "failed"
)

// AnalysisRecord is a cached analysis result keyed 1:1 by
// (vessel id, kind). The payload is the serialized report; it is
// empty while the record is still computing.
type AnalysisRecord struct {
	VesselID     string
	Kind         AnalysisKind
	Status       AnalysisStatus
	Payload      json.RawMessage
	ErrorMessage string
	Metadata     ComputationMetadata
}

// ComputationMetadata tracks when and how the payload was produced.
// LastUpdatedAt is refreshed on every status write so an orphaned
// computing record can be detected by age.
type ComputationMetadata struct {
	GeneratedAt   time.Time
	LastUpdatedAt time.Time
	Degraded      bool
	OracleModel   string
}
