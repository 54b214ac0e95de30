package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vessel-logistics-service/internal/domain"
)

// SQLite-backed implementation of the AnalysisRepository port.
// Timestamps are stored as RFC 3339 text so lexical and chronological
// order coincide.
type SqliteAnalysisRepository struct{ DB *sql.DB }

func NewSqliteAnalysisRepository(db *sql.DB) *SqliteAnalysisRepository {
	return &SqliteAnalysisRepository{DB: db}
}

func (s *SqliteAnalysisRepository) Get(ctx context.Context, vesselID string, kind domain.AnalysisKind) (*domain.AnalysisRecord, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite analysis repository: DB is nil")
	}

	query := `
	SELECT status, payload, error_message, generated_at, last_updated_at, degraded, oracle_model
	FROM analysis_records
	WHERE vessel_id = ? AND kind = ?;
	`

	var (
		status      string
		payload     sql.NullString
		errMsg      string
		generatedAt string
		updatedAt   string
		degraded    bool
		model       string
	)
	err := s.DB.QueryRowContext(ctx, query, vesselID, string(kind)).
		Scan(&status, &payload, &errMsg, &generatedAt, &updatedAt, &degraded, &model)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "analysis", ID: vesselID}
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %q/%s: %w", vesselID, kind, err)
	}

	rec := &domain.AnalysisRecord{
		VesselID:     vesselID,
		Kind:         kind,
		Status:       domain.AnalysisStatus(status),
		ErrorMessage: errMsg,
		Metadata: domain.ComputationMetadata{
			Degraded:    degraded,
			OracleModel: model,
		},
	}
	if payload.Valid {
		rec.Payload = []byte(payload.String)
	}

	if rec.Metadata.GeneratedAt, err = time.Parse(time.RFC3339Nano, generatedAt); err != nil {
		return nil, fmt.Errorf("get analysis %q/%s: parse generated_at: %w", vesselID, kind, err)
	}
	if rec.Metadata.LastUpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("get analysis %q/%s: parse last_updated_at: %w", vesselID, kind, err)
	}

	return rec, nil
}

func (s *SqliteAnalysisRepository) Put(ctx context.Context, rec *domain.AnalysisRecord) error {
	if s.DB == nil {
		return errors.New("sqlite analysis repository: DB is nil")
	}

	query := `
	INSERT OR REPLACE INTO analysis_records (
		vessel_id, kind, status, payload, error_message,
		generated_at, last_updated_at, degraded, oracle_model
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	var payload any
	if rec.Payload != nil {
		payload = string(rec.Payload)
	}

	_, err := s.DB.ExecContext(ctx, query,
		rec.VesselID,
		string(rec.Kind),
		string(rec.Status),
		payload,
		rec.ErrorMessage,
		rec.Metadata.GeneratedAt.UTC().Format(time.RFC3339Nano),
		rec.Metadata.LastUpdatedAt.UTC().Format(time.RFC3339Nano),
		rec.Metadata.Degraded,
		rec.Metadata.OracleModel,
	)
	if err != nil {
		return fmt.Errorf("put analysis %q/%s: %w", rec.VesselID, rec.Kind, err)
	}

	return nil
}

func (s *SqliteAnalysisRepository) Delete(ctx context.Context, vesselID string, kind domain.AnalysisKind) error {
	if s.DB == nil {
		return errors.New("sqlite analysis repository: DB is nil")
	}

	query := `
	DELETE FROM analysis_records
	WHERE vessel_id = ? AND kind = ?;
	`
	if _, err := s.DB.ExecContext(ctx, query, vesselID, string(kind)); err != nil {
		return fmt.Errorf("delete analysis %q/%s: %w", vesselID, kind, err)
	}

	return nil
}
