package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"vessel-logistics-service/internal/domain"
)

// SQLite-backed implementation of the VesselRepository port.
type SqliteVesselRepository struct{ DB *sql.DB }

func NewSqliteVesselRepository(db *sql.DB) *SqliteVesselRepository {
	return &SqliteVesselRepository{DB: db}
}

// Return all vessels stored in the database.
func (s *SqliteVesselRepository) ListVessels(ctx context.Context) ([]*domain.Vessel, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite vessel repository: DB is nil")
	}

	query := `
	SELECT doc
	FROM vessels
	ORDER BY vessel_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list vessels: query vessels table: %w", err)
	}
	defer rows.Close()

	vessels := make([]*domain.Vessel, 0, 16)
	for rows.Next() {
		var blob string
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("list vessels: scan row: %w", err)
		}

		var doc vesselDoc
		if err := json.Unmarshal([]byte(blob), &doc); err != nil {
			return nil, fmt.Errorf("list vessels: parse vessel doc: %w", err)
		}
		vessels = append(vessels, doc.toDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vessels: row iteration: %w", err)
	}

	return vessels, nil
}

// Return a single vessel by id.
func (s *SqliteVesselRepository) GetVessel(ctx context.Context, vesselID string) (*domain.Vessel, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite vessel repository: DB is nil")
	}

	query := `
	SELECT doc
	FROM vessels
	WHERE vessel_id = ?;
	`
	var blob string
	err := s.DB.QueryRowContext(ctx, query, vesselID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Resource: "vessel", ID: vesselID}
	}
	if err != nil {
		return nil, fmt.Errorf("get vessel %q: %w", vesselID, err)
	}

	var doc vesselDoc
	if err := json.Unmarshal([]byte(blob), &doc); err != nil {
		return nil, fmt.Errorf("get vessel %q: parse vessel doc: %w", vesselID, err)
	}

	return doc.toDomain(), nil
}
