package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vessel-logistics-service/internal/domain"
)

// SQLite-backed implementation of the DelayRepository port. The
// history is append-only; the only destructive operation is the
// keep-last-N prune.
type SqliteDelayRepository struct{ DB *sql.DB }

func NewSqliteDelayRepository(db *sql.DB) *SqliteDelayRepository {
	return &SqliteDelayRepository{DB: db}
}

func (s *SqliteDelayRepository) Create(ctx context.Context, p *domain.DelayPrediction) error {
	if s.DB == nil {
		return errors.New("sqlite delay repository: DB is nil")
	}

	blob, err := json.Marshal(delayDocFromDomain(p))
	if err != nil {
		return fmt.Errorf("create prediction %q: marshal doc: %w", p.PredictionID, err)
	}

	query := `
	INSERT INTO delay_predictions (
		prediction_id, vessel_id, doc, created_at
	)
	VALUES (?, ?, ?, ?);
	`
	_, err = s.DB.ExecContext(ctx, query,
		p.PredictionID,
		p.VesselID,
		string(blob),
		p.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("create prediction %q: %w", p.PredictionID, err)
	}

	return nil
}

func (s *SqliteDelayRepository) ListRecent(ctx context.Context, vesselID string, limit int) ([]*domain.DelayPrediction, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite delay repository: DB is nil")
	}
	if limit <= 0 {
		return []*domain.DelayPrediction{}, nil
	}

	query := `
	SELECT doc
	FROM delay_predictions
	WHERE vessel_id = ?
	ORDER BY created_at DESC
	LIMIT ?;
	`
	rows, err := s.DB.QueryContext(ctx, query, vesselID, limit)
	if err != nil {
		return nil, fmt.Errorf("list predictions for %q: %w", vesselID, err)
	}
	defer rows.Close()

	out := make([]*domain.DelayPrediction, 0, limit)
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("list predictions for %q: scan row: %w", vesselID, err)
		}

		var doc delayDoc
		if err := json.Unmarshal([]byte(blob), &doc); err != nil {
			return nil, fmt.Errorf("list predictions for %q: parse doc: %w", vesselID, err)
		}
		out = append(out, doc.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list predictions for %q: row iteration: %w", vesselID, err)
	}

	return out, nil
}

func (s *SqliteDelayRepository) PruneKeepLast(ctx context.Context, vesselID string, keep int) (int, error) {
	if s.DB == nil {
		return 0, errors.New("sqlite delay repository: DB is nil")
	}
	if keep < 0 {
		return 0, errors.New("prune predictions: keep must not be negative")
	}

	// Delete everything older than the keep most recent entries.
	query := `
	DELETE FROM delay_predictions
	WHERE vessel_id = ?
	  AND prediction_id NOT IN (
		SELECT prediction_id
		FROM delay_predictions
		WHERE vessel_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	);
	`
	res, err := s.DB.ExecContext(ctx, query, vesselID, vesselID, keep)
	if err != nil {
		return 0, fmt.Errorf("prune predictions for %q: %w", vesselID, err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune predictions for %q: rows affected: %w", vesselID, err)
	}

	return int(removed), nil
}
