package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vessel-logistics-service/internal/domain"
	"vessel-logistics-service/internal/platform/obs"
)

// SQLAnalysisRepository is the Postgres implementation of the
// AnalysisRepository port, used when the service runs against a
// shared database instead of the local SQLite file.
type SQLAnalysisRepository struct{ DB *sql.DB }

func NewSQLAnalysisRepository(db *sql.DB) *SQLAnalysisRepository {
	return &SQLAnalysisRepository{DB: db}
}

func (s *SQLAnalysisRepository) Get(ctx context.Context, vesselID string, kind domain.AnalysisKind) (_ *domain.AnalysisRecord, err error) {
	defer obs.Time(ctx, "analysis.repo.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("analysis repository: db is nil")
	}

	q := `
	SELECT status, payload, error_message, generated_at, last_updated_at, degraded, oracle_model
	FROM analysis_records
	WHERE vessel_id = $1 AND kind = $2;
	`

	rec := &domain.AnalysisRecord{VesselID: vesselID, Kind: kind}
	var payload sql.NullString
	err = s.DB.QueryRowContext(ctx, q, vesselID, string(kind)).Scan(
		&rec.Status,
		&payload,
		&rec.ErrorMessage,
		&rec.Metadata.GeneratedAt,
		&rec.Metadata.LastUpdatedAt,
		&rec.Metadata.Degraded,
		&rec.Metadata.OracleModel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "analysis", ID: vesselID}
	}
	if err != nil {
		return nil, fmt.Errorf("get analysis %q/%s: %w", vesselID, kind, err)
	}

	if payload.Valid {
		rec.Payload = []byte(payload.String)
	}

	return rec, nil
}

func (s *SQLAnalysisRepository) Put(ctx context.Context, rec *domain.AnalysisRecord) (err error) {
	defer obs.Time(ctx, "analysis.repo.Put")(&err)

	if s.DB == nil {
		return errors.New("analysis repository: db is nil")
	}

	q := `
	INSERT INTO analysis_records (
		vessel_id, kind, status, payload, error_message,
		generated_at, last_updated_at, degraded, oracle_model
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (vessel_id, kind) DO UPDATE
	SET status = EXCLUDED.status,
		payload = EXCLUDED.payload,
		error_message = EXCLUDED.error_message,
		generated_at = EXCLUDED.generated_at,
		last_updated_at = EXCLUDED.last_updated_at,
		degraded = EXCLUDED.degraded,
		oracle_model = EXCLUDED.oracle_model;
	`

	var payload any
	if rec.Payload != nil {
		payload = string(rec.Payload)
	}

	_, err = s.DB.ExecContext(ctx, q,
		rec.VesselID,
		string(rec.Kind),
		string(rec.Status),
		payload,
		rec.ErrorMessage,
		rec.Metadata.GeneratedAt.UTC(),
		rec.Metadata.LastUpdatedAt.UTC(),
		rec.Metadata.Degraded,
		rec.Metadata.OracleModel,
	)
	if err != nil {
		return fmt.Errorf("put analysis %q/%s: %w", rec.VesselID, rec.Kind, err)
	}

	return nil
}

func (s *SQLAnalysisRepository) Delete(ctx context.Context, vesselID string, kind domain.AnalysisKind) (err error) {
	defer obs.Time(ctx, "analysis.repo.Delete")(&err)

	if s.DB == nil {
		return errors.New("analysis repository: db is nil")
	}

	q := `
	DELETE FROM analysis_records
	WHERE vessel_id = $1 AND kind = $2;
	`
	if _, err := s.DB.ExecContext(ctx, q, vesselID, string(kind)); err != nil {
		return fmt.Errorf("delete analysis %q/%s: %w", vesselID, kind, err)
	}

	return nil
}
